// G:\go_spurchat\internal\services\chat\roles.go
package chat

import (
	"fmt"

	"github.com/iyunix/go-spurchat/internal/domain"
	"github.com/iyunix/go-spurchat/internal/services/ai"
)

// ProviderRole maps a stored sender onto the completion API's role vocabulary.
func ProviderRole(sender domain.Sender) (string, error) {
	switch sender {
	case domain.SenderUser:
		return ai.RoleUser, nil
	case domain.SenderAI:
		return ai.RoleAssistant, nil
	default:
		return "", fmt.Errorf("unknown sender %q", sender)
	}
}

// SenderForRole is the inverse of ProviderRole.
func SenderForRole(role string) (domain.Sender, error) {
	switch role {
	case ai.RoleUser:
		return domain.SenderUser, nil
	case ai.RoleAssistant:
		return domain.SenderAI, nil
	default:
		return "", fmt.Errorf("role %q has no stored sender", role)
	}
}
