package db

// Schema creates the tables used by the service. Statements are idempotent so
// the schema can be applied on every start and by the integration tests.
const Schema = `
CREATE TABLE IF NOT EXISTS public.fq_user
(
    id            SERIAL PRIMARY KEY,
    username      VARCHAR     NOT NULL UNIQUE,
    password_hash VARCHAR     NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS public.avatar
(
    user_id    INTEGER PRIMARY KEY REFERENCES public.fq_user (id) ON DELETE CASCADE,
    level      INTEGER          NOT NULL DEFAULT 1 CHECK (level >= 1),
    experience INTEGER          NOT NULL DEFAULT 0 CHECK (experience >= 0),
    hp         DOUBLE PRECISION NOT NULL DEFAULT 10,
    mp         DOUBLE PRECISION NOT NULL DEFAULT 10,
    attack     DOUBLE PRECISION NOT NULL DEFAULT 10,
    defense    DOUBLE PRECISION NOT NULL DEFAULT 10 CHECK (defense BETWEEN 0 AND 90),
    agility    DOUBLE PRECISION NOT NULL DEFAULT 10 CHECK (agility BETWEEN 0 AND 90),
    boss_level INTEGER          NOT NULL DEFAULT 0 CHECK (boss_level >= 0),
    version    INTEGER          NOT NULL DEFAULT 1,
    updated_at TIMESTAMPTZ      NOT NULL DEFAULT now()
);
`
