package material

// Group is a named scenario generator. Build draws from g's stream and returns
// the overrides of its scenario family.
type Group struct {
	Name  string
	Build func(g *Generator) []Override
}

// Catalog runs its groups in insertion order.
type Catalog struct {
	groups []Group
}

func NewCatalog(groups ...Group) *Catalog {
	return &Catalog{groups: groups}
}

// DefaultCatalog returns every built-in scenario group.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Group{"boundary-thickness", boundaryThickness},
		Group{"boundary-width", boundaryWidth},
		Group{"boundary-weight", boundaryWeight},
		Group{"grade-coverage", gradeCoverage},
		Group{"hardness-surface", hardnessSurface},
		Group{"contract-cross", contractCross},
		Group{"export-domestic", exportDomestic},
		Group{"remarks", remarkScenarios},
		Group{"optional-fields", optionalFields},
		Group{"storage-age", storageAge},
		Group{"weekly-delivery", weeklyDelivery},
		Group{"customer-coverage", customerCoverage},
		Group{"combined-extremes", combinedExtremes},
		Group{"batch-grouping", batchGrouping},
		Group{"date-edges", dateEdges},
	)
}

// Groups returns the groups in execution order.
func (c *Catalog) Groups() []Group {
	out := make([]Group, len(c.groups))
	copy(out, c.groups)
	return out
}

// Add appends a group.
func (c *Catalog) Add(group Group) *Catalog {
	c.groups = append(c.groups, group)
	return c
}

// Build runs every group once and concatenates the results, tagging each
// override with its group name.
func (c *Catalog) Build(g *Generator) []Override {
	var out []Override
	for _, group := range c.groups {
		items := group.Build(g)
		for i := range items {
			items[i].Scenario = group.Name
		}
		g.log.Debug("scenario group built", "group", group.Name, "size", len(items))
		out = append(out, items...)
	}
	return out
}
