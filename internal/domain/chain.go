package domain

// Chain is the ordered sequence of rounds from seed to most recent.
// Rounds[0] is always the initial round of a non-empty chain.
type Chain struct {
	Initial *InitialData
	Rounds  []*Round
}

// IsEmpty reports whether the chain has been seeded.
func (c *Chain) IsEmpty() bool {
	return len(c.Rounds) == 0
}

// Last returns the most recent round, or nil for an empty chain.
func (c *Chain) Last() *Round {
	if c.IsEmpty() {
		return nil
	}
	return c.Rounds[len(c.Rounds)-1]
}

// Start seeds an empty chain.
func (c *Chain) Start(data *InitialData, seed *Round) error {
	if !c.IsEmpty() || c.Initial != nil {
		return ErrChainExists
	}
	c.Initial = data
	c.Rounds = []*Round{seed}
	return nil
}

// Preview computes the round Append would add, without adding it.
func (c *Chain) Preview(in RoundInput) (*Round, error) {
	last := c.Last()
	if last == nil {
		return nil, ErrChainEmpty
	}
	return NextRound(last, in)
}

// Append adds the round following the current last round.
func (c *Chain) Append(in RoundInput) (*Round, error) {
	round, err := c.Preview(in)
	if err != nil {
		return nil, err
	}
	c.Rounds = append(c.Rounds, round)
	return round, nil
}

// Remove deletes the round with the given id and rebuilds every round after
// it from its surviving predecessor. Removing the last remaining round
// clears the chain. It returns the number of rounds that were recomputed.
// On error the chain is left unchanged.
func (c *Chain) Remove(id string) (int, error) {
	idx := c.indexOf(id)
	if idx < 0 {
		return 0, ErrRoundNotFound
	}

	if len(c.Rounds) == 1 {
		c.Initial = nil
		c.Rounds = nil
		return 0, nil
	}

	survivors := make([]*Round, 0, len(c.Rounds)-1)
	survivors = append(survivors, c.Rounds[:idx]...)
	survivors = append(survivors, c.Rounds[idx+1:]...)

	rebuilt, err := c.rebuildFrom(survivors, idx)
	if err != nil {
		return 0, err
	}

	c.Rounds = rebuilt
	return len(rebuilt) - idx, nil
}

// rebuildFrom recomputes survivors[from:] left to right. Rounds before from
// keep their values since neither they nor their predecessors changed.
func (c *Chain) rebuildFrom(survivors []*Round, from int) ([]*Round, error) {
	out := make([]*Round, len(survivors))
	copy(out[:from], survivors[:from])

	for i := from; i < len(survivors); i++ {
		cur := survivors[i]

		if i == 0 {
			first := *cur
			first.IsInitial = true
			if c.Initial != nil {
				first.UserOwnershipPercentage = c.Initial.UserOwnershipPercentage
			}
			out[0] = &first
			continue
		}

		next, err := NextRound(out[i-1], RoundInput{
			ID:         cur.ID,
			Name:       cur.Name,
			Date:       cur.Date,
			Investment: cur.InvestmentAmount,
			PreMoney:   cur.PreMoneyValuation,
		})
		if err != nil {
			return nil, err
		}
		out[i] = next
	}

	return out, nil
}

func (c *Chain) indexOf(id string) int {
	for i, r := range c.Rounds {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the chain.
func (c *Chain) Clone() *Chain {
	out := &Chain{}
	if c.Initial != nil {
		initial := *c.Initial
		out.Initial = &initial
	}
	if len(c.Rounds) > 0 {
		out.Rounds = make([]*Round, len(c.Rounds))
		for i, r := range c.Rounds {
			round := *r
			out.Rounds[i] = &round
		}
	}
	return out
}
