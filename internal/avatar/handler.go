package avatar

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/2beens/fitquest/internal/auth"
	"github.com/2beens/fitquest/internal/telemetry/tracing"
	"github.com/2beens/fitquest/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=avatar_test

type avatarService interface {
	Get(ctx context.Context, userID int) (*Avatar, error)
	AddExperience(ctx context.Context, userID, points int) (*Avatar, bool, error)
	UpgradeStat(ctx context.Context, userID int, statKey StatKey) (*Avatar, error)
	AdvanceBoss(ctx context.Context, userID int) (*Avatar, error)
	NextBoss(ctx context.Context, userID int) (*NextBoss, error)
}

type bossStatsProvider interface {
	Stats(level int) (BossStats, error)
}

type AddExperienceRequest struct {
	// pointer, so a missing field is told apart from 0
	Points *int `json:"points"`
}

type AddExperienceResponse struct {
	Avatar    *Avatar `json:"avatar"`
	LeveledUp bool    `json:"leveledUp"`
}

type UpgradeStatRequest struct {
	Stat StatKey `json:"stat"`
}

type Handler struct {
	service   avatarService
	bossCurve bossStatsProvider
}

func NewHandler(service avatarService, bossCurve bossStatsProvider) *Handler {
	return &Handler{
		service:   service,
		bossCurve: bossCurve,
	}
}

// SetupRoutes registers the avatar routes. addExperienceMiddleware wraps only
// the experience route, it is where the rate limiter goes.
func (handler *Handler) SetupRoutes(
	r *mux.Router,
	addExperienceMiddleware func(http.Handler) http.Handler,
) {
	var addExperience http.Handler = http.HandlerFunc(handler.HandleAddExperience)
	if addExperienceMiddleware != nil {
		addExperience = addExperienceMiddleware(addExperience)
	}

	r.HandleFunc("/avatar", handler.HandleGet).Methods("GET", "OPTIONS").Name("avatar")
	r.Handle("/avatar/experience", addExperience).Methods("POST", "OPTIONS").Name("avatar-experience")
	r.HandleFunc("/avatar/upgrade", handler.HandleUpgradeStat).Methods("POST", "OPTIONS").Name("avatar-upgrade")
	r.HandleFunc("/avatar/boss/advance", handler.HandleAdvanceBoss).Methods("POST", "OPTIONS").Name("avatar-boss-advance")
	r.HandleFunc("/avatar/boss", handler.HandleNextBoss).Methods("GET", "OPTIONS").Name("avatar-boss")
	r.HandleFunc("/boss/{level}/stats", handler.HandleBossStats).Methods("GET", "OPTIONS").Name("boss-stats")
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.avatar.get")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	a, err := handler.service.Get(ctx, userID)
	if err != nil {
		log.Errorf("get avatar for user %d: %s", userID, err)
		span.SetStatus(codes.Error, err.Error())
		writeServiceError(w, err)
		return
	}

	pkg.WriteJSON(w, a, http.StatusOK)
}

func (handler *Handler) HandleAddExperience(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.avatar.addexperience")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req AddExperienceRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Points == nil {
		http.Error(w, "error, points missing", http.StatusBadRequest)
		return
	}
	if *req.Points > MaxExperience {
		http.Error(w, "error, points too large", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("points", *req.Points))

	a, leveledUp, err := handler.service.AddExperience(ctx, userID, *req.Points)
	if err != nil {
		log.Errorf("add %d experience for user %d: %s", *req.Points, userID, err)
		span.SetStatus(codes.Error, err.Error())
		writeServiceError(w, err)
		return
	}

	pkg.WriteJSON(w, AddExperienceResponse{
		Avatar:    a,
		LeveledUp: leveledUp,
	}, http.StatusOK)
}

func (handler *Handler) HandleUpgradeStat(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.avatar.upgradestat")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req UpgradeStatRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Stat == "" {
		http.Error(w, "error, stat missing", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("stat", req.Stat.String()))

	a, err := handler.service.UpgradeStat(ctx, userID, req.Stat)
	if err != nil {
		log.Errorf("upgrade stat [%s] for user %d: %s", req.Stat, userID, err)
		span.SetStatus(codes.Error, err.Error())
		writeServiceError(w, err)
		return
	}

	pkg.WriteJSON(w, a, http.StatusOK)
}

func (handler *Handler) HandleAdvanceBoss(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.avatar.advanceboss")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	a, err := handler.service.AdvanceBoss(ctx, userID)
	if err != nil {
		log.Errorf("advance boss for user %d: %s", userID, err)
		span.SetStatus(codes.Error, err.Error())
		writeServiceError(w, err)
		return
	}

	pkg.WriteJSON(w, a, http.StatusOK)
}

func (handler *Handler) HandleNextBoss(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.avatar.nextboss")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	nextBoss, err := handler.service.NextBoss(ctx, userID)
	if err != nil {
		log.Errorf("next boss for user %d: %s", userID, err)
		span.SetStatus(codes.Error, err.Error())
		writeServiceError(w, err)
		return
	}

	pkg.WriteJSON(w, nextBoss, http.StatusOK)
}

func (handler *Handler) HandleBossStats(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.avatar.bossstats")
	defer span.End()

	levelStr := mux.Vars(r)["level"]
	level, err := strconv.Atoi(levelStr)
	if err != nil {
		http.Error(w, "error, level NaN", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("boss.level", level))

	stats, err := handler.bossCurve.Stats(level)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkg.WriteJSON(w, stats, http.StatusOK)
}

func requireUser(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := auth.UserIDFrom(r.Context())
	if !ok {
		// auth middleware not in front of this route
		log.Errorf("no user in context for %s", r.URL.Path)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			http.Error(w, "error, body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		log.Debugf("%s, unmarshal json body: %s", r.URL.Path, err)
		http.Error(w, "error, invalid json body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeServiceError(w http.ResponseWriter, err error) {
	var invalidInputErr *InvalidInputError
	switch {
	case errors.As(err, &invalidInputErr):
		http.Error(w, invalidInputErr.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrVersionConflict):
		http.Error(w, "avatar was modified concurrently, try again", http.StatusConflict)
	case errors.Is(err, ErrAvatarNotFound):
		http.Error(w, "avatar not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
