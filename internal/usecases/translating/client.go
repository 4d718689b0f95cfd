package translating

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/vfg2006/farm-market-api/internal/config"
	"github.com/vfg2006/farm-market-api/pkg/utils"
)

type Client interface {
	Translate(text string, sourceLang string, targetLang string) (string, error)
}

type ResponseTranslation struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus int `json:"responseStatus"`
}

// MyMemoryClient consulta a API pública do MyMemory via GET
type MyMemoryClient struct {
	Cfg *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &MyMemoryClient{
		Cfg: cfg,
	}
}

func (c *MyMemoryClient) Translate(text string, sourceLang string, targetLang string) (string, error) {
	params := url.Values{}
	params.Add("q", text)
	params.Add("langpair", fmt.Sprintf("%s|%s", sourceLang, targetLang))

	requestURL := fmt.Sprintf("%s/get?%s", c.Cfg.Translation.URL, params.Encode())

	body, err := utils.MakeRequest(requestURL)
	if err != nil {
		return "", fmt.Errorf("erro ao consultar o serviço de tradução: %w", err)
	}

	var response ResponseTranslation
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("erro ao decodificar a resposta de tradução: %w", err)
	}

	if response.ResponseStatus != 200 {
		return "", fmt.Errorf("serviço de tradução retornou status %d", response.ResponseStatus)
	}

	return response.ResponseData.TranslatedText, nil
}
