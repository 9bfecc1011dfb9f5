package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepair_StrictJSON(t *testing.T) {
	m, ok := Repair(`{"apiKey": "AIza-test", "projectId": "taller-demo", "messagingSenderId": 123456}`)
	require.True(t, ok)
	assert.Equal(t, "AIza-test", m["apiKey"])
	assert.Equal(t, "taller-demo", m["projectId"])
	assert.Equal(t, float64(123456), m["messagingSenderId"])
}

func TestRepair_ObjectLiteral(t *testing.T) {
	// Типичная вставка из документации: ключи без кавычек, одинарные кавычки, висячая запятая
	m, ok := Repair(`{apiKey: 'x', projectId: "y",}`)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"apiKey": "x", "projectId": "y"}, m)
}

func TestRepair_FirebaseConsoleSnippet(t *testing.T) {
	raw := `{
  apiKey: 'AIzaSyTest',
  authDomain: 'taller-demo.firebaseapp.com',
  projectId: 'taller-demo',
  storageBucket: 'taller-demo.appspot.com',
  messagingSenderId: '98765',
  appId: '1:98765:web:abc123',
}`
	m, ok := Repair(raw)
	require.True(t, ok)
	assert.Equal(t, "AIzaSyTest", m["apiKey"])
	assert.Equal(t, "taller-demo", m["projectId"])
	assert.Equal(t, "1:98765:web:abc123", m["appId"])
}

func TestRepair_TrailingCommaInArray(t *testing.T) {
	m, ok := Repair(`{scopes: ['a', 'b',], projectId: 'p'}`)
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, m["scopes"])
}

func TestRepair_Hopeless(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"это вообще не конфигурация",
		"{apiKey: }",
		"null",
		`"просто строка"`,
		"[1,2,3]",
	} {
		m, ok := Repair(raw)
		assert.False(t, ok, "вход: %q", raw)
		assert.Nil(t, m, "вход: %q", raw)
	}
}
