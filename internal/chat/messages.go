package chat

import (
	"fmt"

	"github.com/Vovarama1992/voice_chat/internal/ai"
)

const (
	EmptyInputMessage = "질문을 입력하거나, 음성 버튼을 눌러서 말해줘!"
	promptPrefix      = "한 줄로 짧게 답해. "
)

func BuildPrompt(utterance string) string {
	return promptPrefix + utterance
}

// GenerationFailureText is what the bot "says" when the model call fails.
func GenerationFailureText(provider string, err error) string {
	switch ai.KindOf(err) {
	case ai.KindTimeout:
		return fmt.Sprintf("%s 응답 시간이 초과됐어요: %v", provider, err)
	case ai.KindRateLimited:
		return fmt.Sprintf("%s 사용량 한도를 초과했어요: %v", provider, err)
	case ai.KindAuth:
		return fmt.Sprintf("%s API 키가 올바르지 않아요: %v", provider, err)
	}
	return fmt.Sprintf("%s 호출 중 에러가 발생했어요: %v", provider, err)
}

func TranscriptionFailureText(err error) string {
	return fmt.Sprintf("음성 인식 중 에러가 발생했어요: %v", err)
}
