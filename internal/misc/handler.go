package misc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/fitquest/internal/auth"
	"github.com/2beens/fitquest/internal/middleware"
	"github.com/2beens/fitquest/internal/telemetry/metrics"
	"github.com/2beens/fitquest/internal/telemetry/tracing"
	"github.com/2beens/fitquest/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=misc

type authService interface {
	Register(ctx context.Context, credentials auth.Credentials) (*auth.User, error)
	Login(ctx context.Context, credentials auth.Credentials, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) error
}

type LoginResponse struct {
	Token string `json:"token"`
}

type RegisterResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type Handler struct {
	versionInfo    string
	authService    authService
	metricsManager *metrics.Manager
}

func NewHandler(
	versionInfo string,
	authService authService,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		versionInfo:    versionInfo,
		authService:    authService,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	loginRateLimitAllowedPerMin int,
) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")

	loginSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	loginSubrouter.
		HandleFunc("/register", handler.handleRegister).
		Methods("POST", "OPTIONS").Name("register")
	loginSubrouter.
		HandleFunc("/login", handler.handleLogin).
		Methods("POST", "OPTIONS").Name("login")
	loginSubrouter.
		HandleFunc("/logout", handler.handleLogout).
		Methods("GET", "OPTIONS").Name("logout")

	// rate limit the /a/ endpoints per client to prevent credentials guessing
	loginSubrouter.Use(middleware.RateLimit(
		rateLimiter,
		"login",
		loginRateLimitAllowedPerMin,
		handler.metricsManager,
		middleware.KeyByIP,
	))
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

func (handler *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.register")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	credentials, ok := readCredentials(w, r)
	if !ok {
		return
	}

	user, err := handler.authService.Register(ctx, credentials)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, auth.ErrUserExists):
			http.Error(w, "error, username taken", http.StatusConflict)
		default:
			log.Errorf("register [%s] failed: %s", credentials.Username, err)
			http.Error(w, "register failed", http.StatusInternalServerError)
		}
		return
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))
	log.Debugf("new user registered: [%s] %d", user.Username, user.ID)
	pkg.WriteJSON(w, RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
	}, http.StatusCreated)
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	credentials, ok := readCredentials(w, r)
	if !ok {
		return
	}

	token, err := handler.authService.Login(ctx, credentials, time.Now())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, auth.ErrWrongPassword) || errors.Is(err, auth.ErrUserNotFound) {
			log.Tracef("failed login attempt for user [%s]: %s", credentials.Username, err)
			handler.countLogin("failed")
			http.Error(w, "error, wrong credentials", http.StatusBadRequest)
			return
		}
		log.Errorf("login failed, generate token error: %s", err)
		handler.countLogin("error")
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	handler.countLogin("ok")
	log.Trace("new login success")
	pkg.WriteJSON(w, LoginResponse{Token: token}, http.StatusOK)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	authToken, found := auth.BearerToken(r)
	if !found {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := handler.authService.Logout(ctx, authToken); err != nil {
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, auth.ErrInvalidToken) {
			http.Error(w, "no can do", http.StatusUnauthorized)
			return
		}
		log.Errorf("logout failed: %s", err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}

	userID, _ := auth.UserIDFrom(r.Context())
	log.Debugf("logout for user %d success", userID)
	pkg.WriteTextResponseOK(w, "logged-out")
}

func (handler *Handler) countLogin(result string) {
	if handler.metricsManager != nil {
		handler.metricsManager.CounterLogins.WithLabelValues(result).Inc()
	}
}

// readCredentials accepts both a json body and a classic form post.
func readCredentials(w http.ResponseWriter, r *http.Request) (auth.Credentials, bool) {
	var credentials auth.Credentials
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			log.Errorf("%s, unmarshal json params: %s", r.URL.Path, err)
			http.Error(w, "error, invalid json body", http.StatusBadRequest)
			return auth.Credentials{}, false
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("%s, parse form error: %s", r.URL.Path, err)
			http.Error(w, "parse form error", http.StatusBadRequest)
			return auth.Credentials{}, false
		}
		credentials = auth.Credentials{
			Username: r.Form.Get("username"),
			Password: r.Form.Get("password"),
		}
	}

	if credentials.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return auth.Credentials{}, false
	}
	if credentials.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return auth.Credentials{}, false
	}
	return credentials, true
}
