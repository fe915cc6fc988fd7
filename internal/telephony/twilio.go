// Package telephony places the outbound calls of a handoff.
package telephony

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diegoclair/oncall-phone-agent/internal/domain"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
	"github.com/diegoclair/oncall-phone-agent/internal/logger"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

var errEmptyRequest = errors.New("call request has neither digits nor a message")

// callCreator is the part of the Twilio API used here.
type callCreator interface {
	CreateCall(params *openapi.CreateCallParams) (*openapi.ApiV2010Call, error)
}

// TwilioPlacer places calls from a verified caller id.
type TwilioPlacer struct {
	api      callCreator
	callerID string
	// hangupURL answers toggle calls once the digits are sent.
	hangupURL string
}

var _ contract.CallPlacer = (*TwilioPlacer)(nil)

func NewTwilioPlacer(account, token, callerID, twimletBase string) *TwilioPlacer {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: account,
		Password: token,
	})
	return newTwilioPlacer(client.Api, account, callerID, twimletBase)
}

func newTwilioPlacer(api callCreator, account, callerID, twimletBase string) *TwilioPlacer {
	return &TwilioPlacer{
		api:       api,
		callerID:  callerID,
		hangupURL: fmt.Sprintf("%s/%s/end", strings.TrimRight(twimletBase, "/"), account),
	}
}

func (p *TwilioPlacer) PlaceCall(ctx context.Context, req entity.CallRequest) (string, error) {
	params := &openapi.CreateCallParams{}
	params.SetTo(req.To)
	params.SetFrom(p.callerID)
	params.SetTimeout(int(domain.CallTimeout.Seconds()))

	switch {
	case req.Digits != "":
		params.SetSendDigits(req.Digits)
		params.SetUrl(p.hangupURL)
	case req.MessageURL != "":
		params.SetUrl(req.MessageURL)
	default:
		return "", errEmptyRequest
	}

	logger.Debug(ctx, "Creating call", "purpose", req.Purpose, "to", req.To, "digits", req.Digits)
	resp, err := p.api.CreateCall(params)
	if err != nil {
		return "", fmt.Errorf("failed to call %s: %w", req.To, err)
	}
	if resp == nil || resp.Sid == nil {
		return "", fmt.Errorf("no call sid returned for %s", req.To)
	}
	return *resp.Sid, nil
}
