package classifier

import (
	"testing"

	"github.com/nkoval/replyflow/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestNextStage(t *testing.T) {
	tests := []struct {
		name    string
		current models.Stage
		intent  models.Intent
		want    models.Stage
	}{
		{
			name:    "first general message starts information gathering",
			current: models.StageInitialInquiry,
			intent:  models.IntentGeneralInquiry,
			want:    models.StageInformationGathering,
		},
		{
			name:    "purchase intent jumps to closing",
			current: models.StageInformationGathering,
			intent:  models.IntentPurchaseIntent,
			want:    models.StageClosing,
		},
		{
			name:    "demo request moves to product matching",
			current: models.StageInitialInquiry,
			intent:  models.IntentDemoRequest,
			want:    models.StageProductMatching,
		},
		{
			name:    "pricing does not regress from closing",
			current: models.StageClosing,
			intent:  models.IntentPricingInquiry,
			want:    models.StageClosing,
		},
		{
			name:    "support request keeps the stage",
			current: models.StageProductMatching,
			intent:  models.IntentSupportRequest,
			want:    models.StageProductMatching,
		},
		{
			name:    "existing customer stays a customer",
			current: models.StageCustomer,
			intent:  models.IntentPurchaseIntent,
			want:    models.StageCustomer,
		},
		{
			name:    "churned is terminal",
			current: models.StageChurned,
			intent:  models.IntentDemoRequest,
			want:    models.StageChurned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStage(tt.current, tt.intent))
		})
	}
}
