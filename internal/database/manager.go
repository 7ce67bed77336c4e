package database

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Manager routes writes to the primary pool and spreads reads over replicas.
type Manager struct {
	primary      *pgxpool.Pool
	replicas     []*pgxpool.Pool
	replicaIndex uint32
}

type Config struct {
	PrimaryDSN  string
	ReplicaDSNs []string

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

func NewManager(ctx context.Context, cfg Config) (*Manager, error) {
	primary, err := connect(ctx, cfg.PrimaryDSN, cfg)
	if err != nil {
		return nil, fmt.Errorf("primary: %w", err)
	}

	replicas := make([]*pgxpool.Pool, 0, len(cfg.ReplicaDSNs))
	for i, dsn := range cfg.ReplicaDSNs {
		replica, err := connect(ctx, dsn, cfg)
		if err != nil {
			primary.Close()
			closePools(replicas)
			return nil, fmt.Errorf("replica %d: %w", i, err)
		}
		replicas = append(replicas, replica)
	}

	return &Manager{primary: primary, replicas: replicas}, nil
}

func connect(ctx context.Context, dsn string, cfg Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping: %w", err)
	}
	return pool, nil
}

func (m *Manager) Write() *pgxpool.Pool {
	return m.primary
}

// Read picks a replica round-robin, falling back to the primary.
func (m *Manager) Read() *pgxpool.Pool {
	if len(m.replicas) == 0 {
		return m.primary
	}

	idx := atomic.AddUint32(&m.replicaIndex, 1) % uint32(len(m.replicas))
	return m.replicas[idx]
}

// Migrate creates the sandbox schema if it does not exist yet.
func (m *Manager) Migrate(ctx context.Context) error {
	if _, err := m.primary.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (m *Manager) Close() {
	if m.primary != nil {
		m.primary.Close()
	}
	closePools(m.replicas)
}

func closePools(pools []*pgxpool.Pool) {
	for _, pool := range pools {
		if pool != nil {
			pool.Close()
		}
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS patients (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	image         TEXT NOT NULL DEFAULT '',
	phone_number  TEXT NOT NULL DEFAULT '',
	role          TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS patients_email_idx ON patients (lower(email));

CREATE TABLE IF NOT EXISTS doctors (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	image      TEXT NOT NULL DEFAULT '',
	speciality TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS doctors_speciality_idx ON doctors (speciality);

CREATE TABLE IF NOT EXISTS appointments (
	id         TEXT PRIMARY KEY,
	patient_id TEXT NOT NULL,
	doctor_id  TEXT NOT NULL,
	day        DATE NOT NULL,
	start_time TEXT NOT NULL,
	status     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS appointments_patient_idx ON appointments (patient_id);
CREATE UNIQUE INDEX IF NOT EXISTS appointments_slot_idx
	ON appointments (doctor_id, day, start_time) WHERE status <> 'REJECTED';

CREATE TABLE IF NOT EXISTS otps (
	email      TEXT PRIMARY KEY,
	code       TEXT NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL,
	verified   BOOLEAN NOT NULL DEFAULT false
);

CREATE TABLE IF NOT EXISTS images (
	name TEXT PRIMARY KEY,
	data BYTEA NOT NULL
);
`
