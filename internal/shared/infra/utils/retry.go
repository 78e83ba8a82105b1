package utils

import (
	"context"
	"time"
)

// Retry ejecuta fn hasta 'attempts' veces mientras retryable(err) sea true.
// Los errores de dominio (p. ej. "no encontrado") no deben reintentarse.
func Retry(ctx context.Context, attempts int, delay time.Duration, retryable func(error) bool, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil || !retryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-time.After(delay):
			// espera antes del siguiente intento
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
