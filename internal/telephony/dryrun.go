package telephony

import (
	"context"

	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
	"github.com/diegoclair/oncall-phone-agent/internal/logger"
	"github.com/google/uuid"
)

// DryRunPlacer logs the calls it would place and reports them as successful.
type DryRunPlacer struct{}

var _ contract.CallPlacer = DryRunPlacer{}

func (DryRunPlacer) PlaceCall(ctx context.Context, req entity.CallRequest) (string, error) {
	if req.Digits != "" {
		logger.Infof(ctx, "In test mode. Not calling the Phone_Ctlr (%s) with digits %s", req.To, req.Digits)
	} else {
		logger.Infof(ctx, "In test mode. Not calling %s (%s)", req.To, req.Purpose)
	}
	return "TEST-" + uuid.NewString(), nil
}
