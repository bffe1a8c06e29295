package diary

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// contentMarker is replaced with the raw diary text when rendering the prompt
const contentMarker = "{{content}}"

// defaultPromptTemplate instructs the model to summarize the dominant emotion
// as a single label and follow with a few sentences of encouragement, in the
// fixed "감정: [label]\n\n[message]" shape the client renders
const defaultPromptTemplate = "너는 심리 상담가야. 사용자가 작성한 일기 내용을 읽고, 사용자의 감정을 한 단어(예: 기쁨, 슬픔, 분노, 불안, 평온)로 요약해줘. " +
	"그리고 그 감정에 공감해주고, 따뜻한 응원의 메시지를 2~3문장으로 작성해줘. " +
	"답변 형식은 반드시 '감정: [요약된 감정]\n\n[응원 메시지]' 와 같이 줄바꿈을 포함해서 보내줘. " +
	"일기 내용: \"" + contentMarker + "\""

// PromptTemplate renders the analysis prompt for a diary entry
type PromptTemplate struct {
	template string
}

// DefaultPromptTemplate returns the built-in counselor prompt
func DefaultPromptTemplate() *PromptTemplate {
	return &PromptTemplate{template: defaultPromptTemplate}
}

// promptConfig is the YAML shape of a prompt override file
type promptConfig struct {
	Template string `yaml:"template"`
}

// LoadPromptTemplate reads a YAML prompt override from the given path. An
// empty path returns the built-in template. An override must contain the
// content marker or the diary text would never reach the model
func LoadPromptTemplate(path string) (*PromptTemplate, error) {
	if path == "" {
		return DefaultPromptTemplate(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt config %s: %w", path, err)
	}

	var config promptConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse prompt config %s: %w", path, err)
	}

	template := strings.TrimSpace(config.Template)
	if template == "" {
		return DefaultPromptTemplate(), nil
	}
	if !strings.Contains(template, contentMarker) {
		return nil, fmt.Errorf("prompt template in %s is missing the %s marker", path, contentMarker)
	}

	return &PromptTemplate{template: template}, nil
}

// Render embeds the raw diary text verbatim into the template. No escaping is
// performed; the AI adapter is trusted to handle arbitrary text
func (p *PromptTemplate) Render(content string) string {
	return strings.ReplaceAll(p.template, contentMarker, content)
}
