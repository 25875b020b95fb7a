package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	assert.Equal(t, "timeout error: Timeout reached", New(ErrorTypeTimeout, "Timeout reached").Error())
	assert.Equal(t, "transport error (code 404): Request error: 404 (Not Found)",
		New(ErrorTypeTransport, "Request error: 404 (Not Found)").WithCode(404).Error())
}

func TestWithCodeCopies(t *testing.T) {
	base := New(ErrorTypeAPI, "API error: x")
	coded := base.WithCode(200)
	assert.Equal(t, 0, base.Code)
	assert.Equal(t, 200, coded.Code)
}

func TestIs(t *testing.T) {
	err := Newf(ErrorTypeDecode, "bad %s", "json")
	assert.True(t, Is(err, ErrorTypeDecode))
	assert.False(t, Is(err, ErrorTypeAPI))
	assert.False(t, Is(nil, ErrorTypeDecode))
	assert.False(t, Is(fmt.Errorf("plain"), ErrorTypeDecode))
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote(ErrorTypeTransport))
	assert.True(t, IsRemote(ErrorTypeOperationFailed))
	assert.False(t, IsRemote(ErrorTypePathNotFound))
	assert.False(t, IsRemote(ErrorTypeTimeout))
}
