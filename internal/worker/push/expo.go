package push

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/eventkeeper/internal/common"
	sdk "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
)

// ExpoGateway publishes notifications through the Expo push service.
type ExpoGateway struct {
	client *sdk.PushClient
}

// NewExpoGateway constructs a gateway. accessToken may be empty for
// projects without enhanced push security.
func NewExpoGateway(accessToken string) *ExpoGateway {
	cfg := &sdk.ClientConfig{}
	if accessToken != "" {
		cfg.AccessToken = accessToken
	}
	return &ExpoGateway{client: sdk.NewPushClient(cfg)}
}

// Publish sends one notification. Every message carries the default sound
// and a badge of 1, matching the mobile client's expectations.
func (g *ExpoGateway) Publish(ctx context.Context, msg Message) error {
	token, err := sdk.NewExponentPushToken(msg.To)
	if err != nil {
		return common.Classified(common.FailureTerminal, fmt.Errorf("malformed push token: %w", err))
	}

	response, err := g.client.Publish(&sdk.PushMessage{
		To:       []sdk.ExponentPushToken{token},
		Title:    msg.Title,
		Body:     msg.Body,
		Data:     msg.Data,
		Sound:    "default",
		Badge:    1,
		Priority: sdk.DefaultPriority,
	})
	if err != nil {
		return common.Classified(common.FailureRetryable, fmt.Errorf("push server error: %w", err))
	}

	if err := response.ValidateResponse(); err != nil {
		if response.Details != nil && response.Details["error"] == sdk.ErrorDeviceNotRegistered {
			return common.Classified(common.FailureTerminal,
				fmt.Errorf("%w: %s", common.ErrDeviceNotRegistered, msg.To))
		}
		return common.Classified(common.FailureRetryable, fmt.Errorf("push ticket error: %w", err))
	}

	return nil
}
