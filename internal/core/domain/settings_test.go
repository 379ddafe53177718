package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, ThemeLight, s.Theme)
	assert.Equal(t, "credentials.json", s.OAuth.ClientFile)
	assert.Equal(t, 5*time.Minute, s.OAuth.Timeout)
	assert.Equal(t, StoreBackendFirebase, s.Store.Backend)
	assert.Equal(t, "/users/credentials", s.Store.RecordPath)
	assert.Equal(t, "firebase_key.json", s.Store.ServiceAccountFile)
	assert.Empty(t, s.Store.DatabaseURL)
	assert.Equal(t, "Your Shopping List", s.Mail.Subject)
	assert.Equal(t, "shopping_list.png", s.Mail.AttachmentName)
}

func TestStoreBackend_IsValid(t *testing.T) {
	tests := []struct {
		backend StoreBackend
		want    bool
	}{
		{StoreBackendFirebase, true},
		{StoreBackendSQLite, true},
		{StoreBackendMemory, true},
		{StoreBackend("redis"), false},
		{StoreBackend(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.backend.IsValid())
		})
	}
}
