package aggregator

import (
	"github.com/DataKnight1/PostMatchReport/internal/geometry"
	"github.com/DataKnight1/PostMatchReport/internal/model"
)

// ShotZone is where on the pitch a shot was taken.
type ShotZone string

const (
	ShotSixYardBox  ShotZone = "six_yard_box"
	ShotPenaltyArea ShotZone = "penalty_area"
	ShotOutsideBox  ShotZone = "outside_box"
	ShotZoneUnknown ShotZone = "unknown"
)

// BodyPart is the part of the body a shot was struck with.
type BodyPart string

const (
	BodyHead      BodyPart = "head"
	BodyLeftFoot  BodyPart = "left_foot"
	BodyRightFoot BodyPart = "right_foot"
	BodyOther     BodyPart = "other"
)

// Situation is the phase of play a shot came from.
type Situation string

const (
	SituationSetPiece      Situation = "set_piece"
	SituationCounterAttack Situation = "counter_attack"
	SituationOpenPlay      Situation = "open_play"
)

// ClassifyZone places a shot in exactly one zone. The six-yard box is carved out of the penalty area.
func ClassifyZone(shot *model.AnnotatedEvent) ShotZone {
	switch {
	case !shot.HasLocation:
		return ShotZoneUnknown
	case geometry.InSixYardBox(shot.AX, shot.AY):
		return ShotSixYardBox
	case geometry.InPenaltyArea(shot.AX, shot.AY):
		return ShotPenaltyArea
	default:
		return ShotOutsideBox
	}
}

func ClassifyBodyPart(shot *model.AnnotatedEvent) BodyPart {
	switch {
	case shot.Qualifiers.Has(model.QualHead):
		return BodyHead
	case shot.Qualifiers.Has(model.QualLeftFoot):
		return BodyLeftFoot
	case shot.Qualifiers.Has(model.QualRightFoot):
		return BodyRightFoot
	default:
		return BodyOther
	}
}

func ClassifySituation(shot *model.AnnotatedEvent) Situation {
	switch {
	case shot.Qualifiers.HasAny(model.QualPenalty, model.QualFreeKick, model.QualCorner, model.QualThrowIn, model.QualSetPiece):
		return SituationSetPiece
	case shot.Qualifiers.Has(model.QualCounterAttack):
		return SituationCounterAttack
	default:
		return SituationOpenPlay
	}
}

var zoneStat = map[ShotZone]model.StatName{
	ShotSixYardBox:  model.StatSixYardBoxShots,
	ShotPenaltyArea: model.StatPenaltyAreaShots,
	ShotOutsideBox:  model.StatOutsideBoxShots,
}

var bodyPartStat = map[BodyPart]model.StatName{
	BodyHead:      model.StatHeadedShots,
	BodyLeftFoot:  model.StatLeftFootShots,
	BodyRightFoot: model.StatRightFootShots,
	BodyOther:     model.StatOtherBodyPartShots,
}

var situationStat = map[Situation]model.StatName{
	SituationSetPiece:      model.StatSetPieceShots,
	SituationCounterAttack: model.StatCounterAttackShots,
	SituationOpenPlay:      model.StatOpenPlayShots,
}

// addShot counts shot into the record's outcome and breakdown statistics.
func addShot(r model.TeamStatRecord, shot *model.AnnotatedEvent) {
	r[model.StatShots]++
	r[model.StatXG] += shot.XG

	switch shot.Outcome {
	case model.OutcomeGoal, model.OutcomeSavedShot:
		r[model.StatShotsOnTarget]++
	case model.OutcomeMissedShot:
		r[model.StatShotsOffTarget]++
	case model.OutcomePost:
		r[model.StatShotsOffTarget]++
		r[model.StatShotsOnPost]++
	case model.OutcomeBlockedShot:
		r[model.StatBlockedShots]++
	}
	if shot.IsGoal && !shot.IsOwnGoal {
		r[model.StatGoals]++
	}
	if shot.Qualifiers.Has(model.QualBigChance) {
		r[model.StatBigChances]++
	}

	if name, ok := zoneStat[ClassifyZone(shot)]; ok {
		r[name]++
	}
	r[bodyPartStat[ClassifyBodyPart(shot)]]++
	r[situationStat[ClassifySituation(shot)]]++
}
