package mongodb

import (
	"errors"
	"fmt"

	"github.com/restaurant/backend/internal/domain/shared"
	"go.mongodb.org/mongo-driver/mongo"
)

// translateError maps driver errors to domain errors
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return shared.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return shared.WrapDomainError(shared.CodeAlreadyExists, "Resource already exists", err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
