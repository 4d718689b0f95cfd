package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/farm-market-api/internal/usecases/translating"
	"github.com/vfg2006/farm-market-api/pkg/apiErrors"
)

type TranslateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

type TranslateResponse struct {
	Text       string `json:"text"`
	Translated string `json:"translated"`
	TargetLang string `json:"target_lang"`
}

func Translate(service translating.Translator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TranslateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.TargetLang == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "target_lang é obrigatório", nil)
			return
		}

		translated, err := service.Translate(req.Text, req.TargetLang)
		if err != nil {
			logrus.WithError(err).Error("Erro ao traduzir texto")
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro no serviço de tradução", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(TranslateResponse{
			Text:       req.Text,
			Translated: translated,
			TargetLang: req.TargetLang,
		})
	}
}

// ClearTranslationCache descarta as traduções em cache, forçando novas
// consultas ao serviço externo
func ClearTranslationCache(service translating.Translator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service.ClearCache()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "cache limpo",
		})
	}
}
