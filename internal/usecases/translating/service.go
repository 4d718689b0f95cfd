// Package translating traduz rótulos da vitrine sob demanda, com cache em
// memória na frente do serviço externo
package translating

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

const defaultSourceLang = "en"

type Translator interface {
	Translate(text string, targetLang string) (string, error)
	ClearCache()
}

type Service struct {
	client  Client
	cache   Cache
	enabled bool
}

func NewService(client Client, cache Cache, enabled bool) Translator {
	return &Service{
		client:  client,
		cache:   cache,
		enabled: enabled,
	}
}

// Translate resolve primeiro pelo cache. Com o serviço desabilitado o texto
// original é devolvido sem consulta externa.
func (s *Service) Translate(text string, targetLang string) (string, error) {
	if !s.enabled || text == "" {
		return text, nil
	}

	key := cacheKey(text, targetLang)
	if translated, ok := s.cache.Get(key); ok {
		return translated, nil
	}

	translated, err := s.client.Translate(text, defaultSourceLang, targetLang)
	if err != nil {
		logrus.WithError(err).WithField("target_lang", targetLang).
			Error("Erro ao traduzir texto")
		return "", err
	}

	s.cache.Put(key, translated)

	return translated, nil
}

func (s *Service) ClearCache() {
	s.cache.Clear()
}

func cacheKey(text string, targetLang string) string {
	return fmt.Sprintf("%s|%s", targetLang, text)
}
