package usecases

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dav/internal/domain/dev"
)

func devSignature(secretKey, uuid string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(uuid))
	return base64.StdEncoding.EncodeToString([]byte(hex.EncodeToString(mac.Sum(nil))))
}

func TestAuthenticateDeveloper_Success(t *testing.T) {
	devRepo := new(mockDevRepository)
	developer := &dev.Dev{ID: 1, UUID: "dev-uuid", APIKey: "key1", SecretKey: "secret1"}
	devRepo.On("GetByAPIKey", mock.Anything, "key1").Return(developer, nil)

	uc := NewAuthenticateDeveloperUseCase(devRepo, nopLogger{})

	credential := "key1," + devSignature("secret1", "dev-uuid")
	result, err := uc.Execute(context.Background(), credential)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, uint(1), result.ID)
}

func TestAuthenticateDeveloper_FailsClosed(t *testing.T) {
	tests := []struct {
		name       string
		credential string
		setup      func(repo *mockDevRepository)
	}{
		{
			name:       "no comma",
			credential: "justonepart",
			setup:      func(repo *mockDevRepository) {},
		},
		{
			name:       "unknown api key",
			credential: "nokey,sig",
			setup: func(repo *mockDevRepository) {
				repo.On("GetByAPIKey", mock.Anything, "nokey").Return(nil, nil)
			},
		},
		{
			name:       "signature mismatch",
			credential: "key1,wrongsignature",
			setup: func(repo *mockDevRepository) {
				repo.On("GetByAPIKey", mock.Anything, "key1").
					Return(&dev.Dev{ID: 1, UUID: "dev-uuid", APIKey: "key1", SecretKey: "secret1"}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			devRepo := new(mockDevRepository)
			tt.setup(devRepo)

			uc := NewAuthenticateDeveloperUseCase(devRepo, nopLogger{})
			result, err := uc.Execute(context.Background(), tt.credential)

			assert.NoError(t, err)
			assert.Nil(t, result)
		})
	}
}
