package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	id "inu/pkg/domain"
)

const (
	admin = id.AccountID("admin")
	alice = id.AccountID("alice")
	bob   = id.AccountID("bob")
)

func TestNewSubdomainRecordIsUnclaimed(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	record := NewSubdomainRecord("elon", "a", admin, 3, now)

	assert.Equal(t, admin, record.Owner)
	assert.Equal(t, BlankProfile(), record.Profile)
	assert.Equal(t, 3, record.Position)
	assert.False(t, record.IsActive(admin))
	assert.True(t, record.IsOwnedBy(admin))
}

func TestApplyTransferWipesProfile(t *testing.T) {
	now := time.Now()
	record := NewSubdomainRecord("elon", "a", admin, 0, now)
	record.ApplyTransfer(alice, now)
	record.Profile.Description = "X"

	record.ApplyTransfer(admin, now.Add(time.Second))

	assert.Equal(t, Blank, record.Profile.Description)
	assert.False(t, record.IsActive(admin))
	assert.Equal(t, now.Add(time.Second), record.UpdatedAt)
}

func TestClassifyTransfer(t *testing.T) {
	assert.Equal(t, TransferDelegated, ClassifyTransfer(admin, alice, admin))
	assert.Equal(t, TransferRedelegated, ClassifyTransfer(alice, bob, admin))
	assert.Equal(t, TransferReclaimed, ClassifyTransfer(alice, admin, admin))
}

func TestIsAdministrator(t *testing.T) {
	reg := NewRegistrar("elon", admin, time.Now())
	assert.True(t, reg.IsAdministrator(admin))
	assert.False(t, reg.IsAdministrator(alice))
	assert.False(t, reg.IsAdministrator(id.ZeroAccount))
}
