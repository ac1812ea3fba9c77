package dynamodb

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cenkalti/backoff/v4"
	"github.com/festhq/gatekeeper/pkg/storage"
)

// errLockConflict marks an optimistic-lock loss: the version or status we
// conditioned on changed between our read and our write. The operation is
// retried with a fresh read.
var errLockConflict = errors.New("optimistic lock conflict")

// isConditionalCancel reports whether err is a conditional-check failure,
// either on a single conditional write or anywhere inside a cancelled
// TransactWriteItems call.
func isConditionalCancel(err error) bool {
	var condFailed *types.ConditionalCheckFailedException
	if errors.As(err, &condFailed) {
		return true
	}
	var txCancelled *types.TransactionCanceledException
	if errors.As(err, &txCancelled) {
		for _, reason := range txCancelled.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return true
			}
		}
	}
	return false
}

// withRetry runs op under the store's bounded retry budget with jittered
// exponential backoff. op must re-read its snapshot on every attempt and
// return errLockConflict (possibly wrapped) when it lost the race; any other
// error aborts immediately. A budget exhausted on conflicts surfaces
// storage.ErrConflict.
func (s *Store) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 20 * time.Millisecond
	bo.MaxInterval = 250 * time.Millisecond

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(s.maxAttempts()-1)), ctx)

	err := backoff.Retry(func() error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, errLockConflict) {
			return err // retryable
		}
		return backoff.Permanent(err)
	}, policy)

	if errors.Is(err, errLockConflict) {
		return storage.ErrConflict
	}
	return err
}
