package util

import (
	"context"

	"github.com/google/uuid"
)

type key string

const jobIDKey = key("x-job-id")

// WithJobID returns a context carrying a job id. An empty id generates a
// fresh one so every processed job is traceable in logs.
func WithJobID(ctx context.Context, id string) context.Context {
	if id == "" {
		return context.WithValue(ctx, jobIDKey, generate())
	}

	return context.WithValue(ctx, jobIDKey, id)
}

// GetJobID returns the job id from ctx if available.
func GetJobID(ctx context.Context) string {
	id, _ := ctx.Value(jobIDKey).(string)
	return id
}

// generate returns a uuid-v4 string to use as job id
func generate() string {
	return uuid.NewString()
}
