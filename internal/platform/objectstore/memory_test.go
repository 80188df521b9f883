package objectstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorePut(t *testing.T) {
	m := NewMemory("https://media.example.com/")
	body := []byte("payload")

	url, err := m.Put(context.Background(), "pet-images/2024/03/a.png", "image/png", body)
	require.NoError(t, err)
	assert.Equal(t, "https://media.example.com/pet-images/2024/03/a.png", url)

	body[0] = 'X'
	assert.Equal(t, []byte("payload"), m.objects["pet-images/2024/03/a.png"])
}
