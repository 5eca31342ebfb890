// Package transition analyzes the feasibility of switching between two occupations.
package transition

import (
	"sort"
	"strconv"

	"github.com/jonathan/fairpath/internal/types"
	"github.com/jonathan/fairpath/internal/vector"
)

// ComputeSkillOverlap compares the skill vectors of two occupations.
//
// The overlap percentage is the cosine similarity of the skill vectors times
// 100. Skills whose target level is below RelevantTargetLevel are ignored; the
// rest are sorted into direct transfers, skills to learn and optional skills.
func ComputeSkillOverlap(source, target types.Occupation, skillNames []string) types.SkillOverlap {
	src, tgt := source.SkillVector, target.SkillVector
	n := min(len(src), len(tgt))

	var transfers, learn, optional []types.TransferItem
	for i := 0; i < n; i++ {
		s, t := src[i], tgt[i]
		if t < RelevantTargetLevel {
			continue
		}
		item := types.TransferItem{Skill: skillName(skillNames, i), SourceLevel: s, TargetLevel: t}

		switch {
		case s >= TransferLevel && t >= TransferLevel:
			transfers = append(transfers, item)
		case t >= LearnTargetLevel && s < LearnSourceCeiling:
			gap := t - s
			item.Gap = &gap
			learn = append(learn, item)
		case t >= OptionalTargetFloor && t < LearnTargetLevel:
			optional = append(optional, item)
		}
	}

	sort.SliceStable(transfers, func(i, j int) bool { return transfers[i].TargetLevel > transfers[j].TargetLevel })
	sort.SliceStable(learn, func(i, j int) bool { return *learn[i].Gap > *learn[j].Gap })
	sort.SliceStable(optional, func(i, j int) bool { return optional[i].TargetLevel > optional[j].TargetLevel })

	return types.SkillOverlap{
		OverlapPercentage: vector.Clamp01(vector.Cosine(src, tgt)) * 100,
		TransfersDirectly: capItems(transfers, MaxTransfers),
		NeedsLearning:     capItems(learn, MaxToLearn),
		OptionalSkills:    capItems(optional, MaxOptional),
		NumTransferable:   len(transfers),
		NumToLearn:        len(learn),
		NumOptional:       len(optional),
	}
}

func capItems(items []types.TransferItem, limit int) []types.TransferItem {
	if items == nil {
		return []types.TransferItem{}
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

func skillName(skillNames []string, i int) string {
	if i < len(skillNames) {
		return skillNames[i]
	}
	return "Skill " + strconv.Itoa(i)
}
