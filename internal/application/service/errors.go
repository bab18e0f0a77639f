package service

import (
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/apperror"
	"go.uber.org/zap"
)

// persistErr passes application errors through and turns anything else
// into a logged persistence failure
func persistErr(log *zap.Logger, op string, err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	log.Error("persistence failure", zap.String("op", op), zap.Error(err))
	return apperror.NewPersistenceError(op, err)
}
