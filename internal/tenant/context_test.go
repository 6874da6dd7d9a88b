package tenant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jangsalab/storeops-backend/config"
	apperrors "github.com/jangsalab/storeops-backend/internal/errors"
)

type fakeMembership struct {
	members map[string]string // "userID/storeID" -> role
}

func (f *fakeMembership) IsMember(_ context.Context, userID, storeID string) (string, bool, error) {
	role, ok := f.members[userID+"/"+storeID]
	return role, ok, nil
}

func devConfig(devMode bool, devStoreID string) *config.Config {
	return &config.Config{
		Dev: config.DevConfig{DevMode: devMode, DevStoreID: devStoreID},
	}
}

func TestResolver_HeaderTakesPrecedence(t *testing.T) {
	membership := &fakeMembership{members: map[string]string{
		"user-1/store-a": "owner",
		"user-1/store-b": "manager",
	}}
	resolver := NewResolver(devConfig(false, ""), membership)

	tc, err := resolver.Resolve(context.Background(), "user-1", "store-b", "store-a")
	assert.NoError(t, err)
	assert.Equal(t, "store-b", tc.StoreID)
	assert.Equal(t, "manager", tc.Role)
}

func TestResolver_ClaimFallback(t *testing.T) {
	membership := &fakeMembership{members: map[string]string{"user-1/store-a": "owner"}}
	resolver := NewResolver(devConfig(false, ""), membership)

	tc, err := resolver.Resolve(context.Background(), "user-1", "", "store-a")
	assert.NoError(t, err)
	assert.Equal(t, "store-a", tc.StoreID)
}

func TestResolver_DevFallbackOnlyInDevMode(t *testing.T) {
	resolver := NewResolver(devConfig(true, "dev-store"), nil)

	tc, err := resolver.Resolve(context.Background(), "", "", "")
	assert.NoError(t, err)
	assert.Equal(t, "dev-store", tc.StoreID)

	resolver = NewResolver(devConfig(false, "dev-store"), nil)
	_, err = resolver.Resolve(context.Background(), "", "", "")
	assert.ErrorIs(t, err, apperrors.ErrMissingTenant)
}

func TestResolver_NonMemberDenied(t *testing.T) {
	membership := &fakeMembership{members: map[string]string{}}
	resolver := NewResolver(devConfig(false, ""), membership)

	_, err := resolver.Resolve(context.Background(), "user-1", "store-x", "")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

// 개발 모드의 service role 세션은 소속이 아니어도 읽기 접근이 허용된다.
// DevMode가 꺼져 있으면 플래그는 무시된다.
func TestResolver_ServiceRoleDevBypassesMembership(t *testing.T) {
	membership := &fakeMembership{members: map[string]string{}}

	cfg := &config.Config{
		Dev: config.DevConfig{DevMode: true, UseServiceRoleDev: true},
	}
	resolver := NewResolver(cfg, membership)

	tc, err := resolver.Resolve(context.Background(), "user-1", "store-x", "")
	assert.NoError(t, err)
	assert.Equal(t, "store-x", tc.StoreID)
	assert.Equal(t, "owner", tc.Role)

	cfg = &config.Config{
		Dev: config.DevConfig{DevMode: false, UseServiceRoleDev: true},
	}
	resolver = NewResolver(cfg, membership)
	_, err = resolver.Resolve(context.Background(), "user-1", "store-x", "")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestResolver_SwitchStore(t *testing.T) {
	membership := &fakeMembership{members: map[string]string{"user-1/store-b": "owner"}}
	resolver := NewResolver(devConfig(false, ""), membership)

	tc, err := resolver.SwitchStore(context.Background(), "user-1", "store-b")
	assert.NoError(t, err)
	assert.Equal(t, "store-b", tc.StoreID)
	assert.Equal(t, "owner", tc.Role)

	_, err = resolver.SwitchStore(context.Background(), "user-1", "store-c")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = resolver.SwitchStore(context.Background(), "user-1", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestContextRoundTrip(t *testing.T) {
	tc := &Context{UserID: "u", StoreID: "s", Role: "owner"}
	ctx := WithTenant(context.Background(), tc)

	got, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, tc, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}
