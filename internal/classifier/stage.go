package classifier

import "github.com/nkoval/replyflow/pkg/models"

// NextStage returns the stage a customer moves to after a message with the
// given intent. Terminal stages never change automatically, and a customer
// never moves backwards through the funnel.
func NextStage(current models.Stage, intent models.Intent) models.Stage {
	if current.Terminal() {
		return current
	}

	switch intent {
	case models.IntentPurchaseIntent:
		return models.StageClosing
	case models.IntentDemoRequest:
		if stageRank(current) < stageRank(models.StageProductMatching) {
			return models.StageProductMatching
		}
		return current
	case models.IntentPricingInquiry:
		if stageRank(current) < stageRank(models.StageProductMatching) {
			return models.StageProductMatching
		}
		return current
	case models.IntentSupportRequest:
		return current
	default:
		if current == models.StageInitialInquiry {
			return models.StageInformationGathering
		}
		return current
	}
}

func stageRank(s models.Stage) int {
	switch s {
	case models.StageInitialInquiry:
		return 0
	case models.StageInformationGathering:
		return 1
	case models.StageProductMatching:
		return 2
	case models.StageObjectionHandling:
		return 3
	case models.StageClosing:
		return 4
	default:
		return 5
	}
}
