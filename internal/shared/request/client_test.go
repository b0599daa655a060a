package request_test

import (
	"testing"

	"hris-portal/internal/shared/request"

	"github.com/stretchr/testify/assert"
)

func TestResolveClientType(t *testing.T) {
	tests := []struct {
		header, ua, want string
	}{
		{"web", "", request.ClientWeb},
		{" Mobile ", "Mozilla/5.0", request.ClientMobile},
		{"", "Mozilla/5.0 (X11; Linux x86_64)", request.ClientWeb},
		{"", "okhttp/4.12.0", request.ClientMobile},
		{"", "Dart/3.3 (dart:io)", request.ClientMobile},
		{"", "curl/8.5.0", request.ClientAPI},
		{"", "", request.ClientAPI},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, request.ResolveClientType(tt.header, tt.ua), "%q %q", tt.header, tt.ua)
	}

	assert.True(t, request.IsWebClient(request.ClientWeb))
	assert.False(t, request.IsWebClient(request.ClientMobile))
}
