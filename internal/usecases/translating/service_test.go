package translating

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubClient struct {
	calls int
	reply string
	err   error
}

func (c *stubClient) Translate(text string, sourceLang string, targetLang string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		enabled  bool
		client   *stubClient
		text     string
		validate func(t *testing.T, client *stubClient, result string, err error)
	}{
		{
			name:    "Primeira consulta - resolve pelo cliente e popula o cache",
			enabled: true,
			client:  &stubClient{reply: "Tomate"},
			text:    "Tomato",
			validate: func(t *testing.T, client *stubClient, result string, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "Tomate", result)
				assert.Equal(t, 1, client.calls)
			},
		},
		{
			name:    "Serviço desabilitado - texto original sem consulta externa",
			enabled: false,
			client:  &stubClient{reply: "Tomate"},
			text:    "Tomato",
			validate: func(t *testing.T, client *stubClient, result string, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "Tomato", result)
				assert.Equal(t, 0, client.calls)
			},
		},
		{
			name:    "Texto vazio - devolvido sem consulta",
			enabled: true,
			client:  &stubClient{},
			text:    "",
			validate: func(t *testing.T, client *stubClient, result string, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "", result)
				assert.Equal(t, 0, client.calls)
			},
		},
		{
			name:    "Falha do serviço externo - erro propagado, cache intacto",
			enabled: true,
			client:  &stubClient{err: errors.New("serviço indisponível")},
			text:    "Tomato",
			validate: func(t *testing.T, client *stubClient, result string, err error) {
				assert.Error(t, err)
				assert.Empty(t, result)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(tt.client, NewMemoryCache(), tt.enabled)
			result, err := service.Translate(tt.text, "pt-BR")
			tt.validate(t, tt.client, result, err)
		})
	}
}

func TestTranslate_CacheHitSkipsClient(t *testing.T) {
	client := &stubClient{reply: "Tomate"}
	service := NewService(client, NewMemoryCache(), true)

	first, err := service.Translate("Tomato", "pt-BR")
	assert.NoError(t, err)

	second, err := service.Translate("Tomato", "pt-BR")
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.calls, "segunda consulta deve sair do cache")
}

func TestTranslate_DistinctLangsDoNotCollide(t *testing.T) {
	client := &stubClient{reply: "Tomate"}
	service := NewService(client, NewMemoryCache(), true)

	_, err := service.Translate("Tomato", "pt-BR")
	assert.NoError(t, err)

	client.reply = "Tomate-ES"
	result, err := service.Translate("Tomato", "es")
	assert.NoError(t, err)
	assert.Equal(t, "Tomate-ES", result)
	assert.Equal(t, 2, client.calls)
}

func TestClearCache(t *testing.T) {
	client := &stubClient{reply: "Tomate"}
	service := NewService(client, NewMemoryCache(), true)

	_, err := service.Translate("Tomato", "pt-BR")
	assert.NoError(t, err)

	service.ClearCache()

	_, err = service.Translate("Tomato", "pt-BR")
	assert.NoError(t, err)
	assert.Equal(t, 2, client.calls, "limpeza do cache força nova consulta")
}
