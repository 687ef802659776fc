package rdo

import "github.com/go-av1/av1enc/internal/block"

// PartitionChoice is the result of comparing PARTITION_NONE against
// PARTITION_SPLIT at one block: the chosen partition and the two costs
// compared. It carries no per-sub-block mode decisions; the emission pass
// runs the mode search for each coded block again.
type PartitionChoice struct {
	Partition block.Partition
	NoneCost  float64
	SplitCost float64
}

// Decide picks NONE or SPLIT by comparing their RD costs directly; the
// caller is responsible for having already computed both. The top-down
// walker calls it with noneCost from the whole block's mode search and
// splitCost as the sum of its in-bounds children's mode-search costs; the
// bottom-up walker compares its two costs inline and does not call it.
func Decide(noneCost, splitCost float64) PartitionChoice {
	if splitCost < noneCost {
		return PartitionChoice{Partition: block.PartitionSplit, NoneCost: noneCost, SplitCost: splitCost}
	}
	return PartitionChoice{Partition: block.PartitionNone, NoneCost: noneCost, SplitCost: splitCost}
}
