package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivity_String(t *testing.T) {
	tests := []struct {
		activity Activity
		want     string
	}{
		{ActivityIdle, "idle"},
		{ActivityRestoring, "restoring"},
		{ActivitySigningIn, "signing_in"},
		{ActivitySigningOut, "signing_out"},
		{ActivitySending, "sending"},
		{Activity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.activity.String())
		})
	}
}

func TestNoticeLevel_String(t *testing.T) {
	assert.Equal(t, "info", NoticeInfo.String())
	assert.Equal(t, "warning", NoticeWarning.String())
	assert.Equal(t, "error", NoticeError.String())
	assert.Equal(t, "unknown", NoticeLevel(-1).String())
}

func TestActivity_IdleIsZero(t *testing.T) {
	var a Activity
	assert.Equal(t, ActivityIdle, a)
}
