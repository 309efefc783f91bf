package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReorderPayload_Valid(t *testing.T) {
	payload := []byte(`[{"id":3,"position":0},{"id":1,"position":1},{"id":2,"position":2}]`)

	items, err := ParseReorderPayload(payload)

	require.NoError(t, err)
	assert.Equal(t, []OrderItem{
		{ProductID: 3, Position: 0},
		{ProductID: 1, Position: 1},
		{ProductID: 2, Position: 2},
	}, items)
}

func TestParseReorderPayload_ExtraFieldsIgnored(t *testing.T) {
	payload := []byte(`[{"id":1,"position":0,"name":"ignored","active":true}]`)

	items, err := ParseReorderPayload(payload)

	require.NoError(t, err)
	assert.Equal(t, []OrderItem{{ProductID: 1, Position: 0}}, items)
}

func TestParseReorderPayload_NotAnArray(t *testing.T) {
	for _, payload := range []string{`{"id":1}`, `"hello"`, `42`, `not json`} {
		_, err := ParseReorderPayload([]byte(payload))
		assert.ErrorIs(t, err, ErrInvalidPayload, "payload: %s", payload)
	}
}

func TestParseReorderPayload_InvalidItem(t *testing.T) {
	cases := map[string]string{
		"missing id":         `[{"position":0}]`,
		"missing position":   `[{"id":1}]`,
		"zero id":            `[{"id":0,"position":0}]`,
		"negative id":        `[{"id":-1,"position":0}]`,
		"negative position":  `[{"id":1,"position":-1}]`,
		"non numeric id":     `[{"id":"abc","position":0}]`,
		"fractional id":      `[{"id":1.5,"position":0}]`,
		"non object element": `[42]`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseReorderPayload([]byte(payload))
			assert.ErrorIs(t, err, ErrInvalidItem)
		})
	}
}

// 第三个元素非法时整体失败，前两个合法元素也不返回。
func TestParseReorderPayload_AllOrNothing(t *testing.T) {
	payload := []byte(`[
		{"id":1,"position":0},
		{"id":2,"position":1},
		{"id":0,"position":2},
		{"id":4,"position":3},
		{"id":5,"position":4}
	]`)

	items, err := ParseReorderPayload(payload)

	assert.ErrorIs(t, err, ErrInvalidItem)
	assert.Nil(t, items)
}

func TestParseReorderPayload_EmptyArray(t *testing.T) {
	items, err := ParseReorderPayload([]byte(`[]`))

	require.NoError(t, err)
	assert.Empty(t, items)
}
