package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/festhq/gatekeeper/pkg/models"
	"github.com/festhq/gatekeeper/pkg/storage"
	"github.com/google/uuid"
)

// CreateAccount creates a new account record with a zero balance.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	if account.Id == "" {
		account.Id = uuid.New().String()
	}
	now := time.Now().UTC()
	account.Balance = 0
	account.Version = 1
	if account.Status == "" {
		account.Status = models.ACCOUNT_ACTIVE
	}
	account.CreatedAt = now
	account.UpdatedAt = now

	accountAV, err := attributevalue.MarshalMap(account)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Accounts),
		Item:                accountAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return nil, storage.ErrAccountExists
		}
		return nil, fmt.Errorf("failed to create account in DynamoDB: %w", err)
	}

	return account, nil
}

// GetAccount retrieves an account from DynamoDB by its ID.
func (s *Store) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": accountID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Accounts),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get account from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrAccountNotFound
	}

	var account models.Account
	if err := attributevalue.UnmarshalMap(result.Item, &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return &account, nil
}

// validateDebit checks a debit against an account snapshot. All failures are
// terminal for the call.
func validateDebit(account *models.Account, amount int64) error {
	if amount <= 0 {
		return storage.ErrInvalidAmount
	}
	switch account.Status {
	case models.ACCOUNT_BLOCKED:
		return storage.ErrAccountBlocked
	case models.ACCOUNT_INACTIVE:
		return storage.ErrAccountInactive
	}
	if account.Balance < amount {
		return &storage.InsufficientBalanceError{
			AccountId: account.Id,
			Requested: amount,
			Balance:   account.Balance,
		}
	}
	return nil
}

// accountDebit builds the conditional balance decrement for one account,
// guarded by both the balance floor and the version read in this attempt.
func (s *Store) accountDebit(account *models.Account, amount int64, now time.Time) types.TransactWriteItem {
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(s.Tables.Accounts),
			Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: account.Id}},
			UpdateExpression:    aws.String("SET balance = balance - :amount, version = version + :inc, updated_at = :now"),
			ConditionExpression: aws.String("balance >= :amount AND version = :version"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":amount":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", amount)},
				":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", account.Version)},
				":inc":     &types.AttributeValueMemberN{Value: "1"},
				":now":     &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
			},
		},
	}
}

// accountCredit builds the conditional balance increment for one account.
func (s *Store) accountCredit(account *models.Account, amount int64, now time.Time) types.TransactWriteItem {
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(s.Tables.Accounts),
			Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: account.Id}},
			UpdateExpression:    aws.String("SET balance = balance + :amount, version = version + :inc, updated_at = :now"),
			ConditionExpression: aws.String("version = :version"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":amount":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", amount)},
				":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", account.Version)},
				":inc":     &types.AttributeValueMemberN{Value: "1"},
				":now":     &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
			},
		},
	}
}

// ledgerPut builds the immutable append of one ledger entry.
func (s *Store) ledgerPut(entry *models.LedgerEntry) (types.TransactWriteItem, error) {
	entryAV, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to marshal ledger entry: %w", err)
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(s.Tables.Ledger),
			Item:                entryAV,
			ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
		},
	}, nil
}

// mutateBalance applies one credit or debit and its ledger entry as a single
// transaction, re-reading the account snapshot on every retry so the written
// balance_after always matches the post-mutation balance.
func (s *Store) mutateBalance(ctx context.Context, accountID string, amount int64, entryType models.LedgerEntryType, relatedOrderID, description string) (*models.LedgerEntry, error) {
	var result *models.LedgerEntry

	err := s.withRetry(ctx, func(ctx context.Context) error {
		account, err := s.GetAccount(ctx, accountID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		var movement types.TransactWriteItem
		if amount < 0 {
			if err := validateDebit(account, -amount); err != nil {
				return err
			}
			movement = s.accountDebit(account, -amount, now)
		} else {
			if amount == 0 {
				return storage.ErrInvalidAmount
			}
			if account.Status == models.ACCOUNT_INACTIVE {
				return storage.ErrAccountInactive
			}
			movement = s.accountCredit(account, amount, now)
		}

		entry := &models.LedgerEntry{
			EntryId:        uuid.New().String(),
			AccountId:      accountID,
			Type:           entryType,
			Amount:         amount,
			BalanceAfter:   account.Balance + amount,
			RelatedOrderId: relatedOrderID,
			Description:    description,
			CreatedAt:      now,
		}
		entryItem, err := s.ledgerPut(entry)
		if err != nil {
			return err
		}

		_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
			TransactItems: []types.TransactWriteItem{movement, entryItem},
		})
		if err != nil {
			if isConditionalCancel(err) {
				return fmt.Errorf("balance mutation on %s: %w", accountID, errLockConflict)
			}
			return fmt.Errorf("failed to execute balance transaction: %w", err)
		}

		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// TopUp credits the account and appends the matching entry.
func (s *Store) TopUp(ctx context.Context, accountID string, amount int64, entryType models.LedgerEntryType, source string) (*models.LedgerEntry, error) {
	if amount <= 0 {
		return nil, storage.ErrInvalidAmount
	}
	if entryType != models.ENTRY_TOPUP && entryType != models.ENTRY_BONUS {
		return nil, fmt.Errorf("entry type %q is not a top-up type", entryType)
	}
	return s.mutateBalance(ctx, accountID, amount, entryType, "", fmt.Sprintf("Top-up via %s", source))
}

// Spend debits the account and appends a PAYMENT entry.
func (s *Store) Spend(ctx context.Context, accountID string, amount int64, reason, relatedOrderID string) (*models.LedgerEntry, error) {
	if amount <= 0 {
		return nil, storage.ErrInvalidAmount
	}
	return s.mutateBalance(ctx, accountID, -amount, models.ENTRY_PAYMENT, relatedOrderID, reason)
}

// Refund credits the account back and appends a REFUND entry.
func (s *Store) Refund(ctx context.Context, accountID string, amount int64, relatedOrderID string) (*models.LedgerEntry, error) {
	if amount <= 0 {
		return nil, storage.ErrInvalidAmount
	}
	return s.mutateBalance(ctx, accountID, amount, models.ENTRY_REFUND, relatedOrderID, fmt.Sprintf("Refund for order %s", relatedOrderID))
}

// Transfer moves amount between two accounts as one atomic unit: source
// debit, destination credit, and both ledger entries commit together or not
// at all.
func (s *Store) Transfer(ctx context.Context, sourceID, destID string, amount int64) (*models.LedgerEntry, *models.LedgerEntry, error) {
	if amount <= 0 {
		return nil, nil, storage.ErrInvalidAmount
	}
	if sourceID == destID {
		return nil, nil, fmt.Errorf("cannot transfer from an account to itself")
	}

	var outEntry, inEntry *models.LedgerEntry

	err := s.withRetry(ctx, func(ctx context.Context) error {
		source, err := s.GetAccount(ctx, sourceID)
		if err != nil {
			return err
		}
		dest, err := s.GetAccount(ctx, destID)
		if err != nil {
			return err
		}

		if err := validateDebit(source, amount); err != nil {
			return err
		}
		if dest.Status == models.ACCOUNT_INACTIVE {
			return storage.ErrAccountInactive
		}

		now := time.Now().UTC()
		out := &models.LedgerEntry{
			EntryId:      uuid.New().String(),
			AccountId:    sourceID,
			Type:         models.ENTRY_TRANSFER_OUT,
			Amount:       -amount,
			BalanceAfter: source.Balance - amount,
			Description:  fmt.Sprintf("Transfer to account %s", destID),
			CreatedAt:    now,
		}
		in := &models.LedgerEntry{
			EntryId:      uuid.New().String(),
			AccountId:    destID,
			Type:         models.ENTRY_TRANSFER_IN,
			Amount:       amount,
			BalanceAfter: dest.Balance + amount,
			Description:  fmt.Sprintf("Transfer from account %s", sourceID),
			CreatedAt:    now,
		}
		outItem, err := s.ledgerPut(out)
		if err != nil {
			return err
		}
		inItem, err := s.ledgerPut(in)
		if err != nil {
			return err
		}

		_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
			TransactItems: []types.TransactWriteItem{
				s.accountDebit(source, amount, now),
				s.accountCredit(dest, amount, now),
				outItem,
				inItem,
			},
		})
		if err != nil {
			if isConditionalCancel(err) {
				return fmt.Errorf("transfer %s -> %s: %w", sourceID, destID, errLockConflict)
			}
			return fmt.Errorf("failed to execute transfer transaction: %w", err)
		}

		outEntry, inEntry = out, in
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return outEntry, inEntry, nil
}

// SetBlocked flips the account's blocked state. The write bumps the version,
// so any in-flight debit whose snapshot predates the freeze fails its
// version condition instead of committing against a blocked account.
func (s *Store) SetBlocked(ctx context.Context, accountID string, blocked bool) error {
	newStatus := models.ACCOUNT_ACTIVE
	if blocked {
		newStatus = models.ACCOUNT_BLOCKED
	}

	now := time.Now().UTC()
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(s.Tables.Accounts),
		Key:                      map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: accountID}},
		UpdateExpression:         aws.String("SET #status = :new_status, version = version + :inc, updated_at = :now"),
		ConditionExpression:      aws.String("attribute_exists(id) AND #status <> :inactive_status"),
		ExpressionAttributeNames: map[string]string{"#status": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":new_status":      &types.AttributeValueMemberS{Value: string(newStatus)},
			":inactive_status": &types.AttributeValueMemberS{Value: string(models.ACCOUNT_INACTIVE)},
			":inc":             &types.AttributeValueMemberN{Value: "1"},
			":now":             &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			// The condition rejects both a missing account and a closed one.
			account, getErr := s.GetAccount(ctx, accountID)
			if getErr != nil {
				return getErr
			}
			if account.Status == models.ACCOUNT_INACTIVE {
				return storage.ErrAccountInactive
			}
			return storage.ErrConflict
		}
		return fmt.Errorf("failed to update account status: %w", err)
	}

	return nil
}
