package parameter

// DefaultCatalog returns the built-in project parameter catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		{
			ID:           BaseRateID,
			Name:         "Base Rate",
			Description:  "Standard hourly rate for development services.",
			Kind:         KindNumber,
			DefaultValue: Number(50),
			Bias:         0.1,
			Unit:         "USD/hour",
		},
		{
			ID:           DiscountID,
			Name:         "Discount",
			Description:  "Discount percentage applied to the final price.",
			Kind:         KindNumber,
			Min:          ptr(0),
			Max:          ptr(100),
			DefaultValue: Number(0),
			Bias:         -0.5,
			Unit:         "%",
		},
		{
			ID:           DurationID,
			Name:         "Project Duration",
			Description:  "Time required to complete the project.",
			Kind:         KindNumber,
			Min:          ptr(1),
			Max:          ptr(180),
			Step:         ptr(1),
			DefaultValue: Number(30),
			Bias:         0,
			Unit:         string(Days),
			Affects: []Affect{
				{Target: "teamSize", Weight: 0.3},
				{Target: UrgencyID, Weight: -0.5},
				{Target: ComplexityID, Weight: 0.2},
			},
		},
		{
			ID:           ComplexityID,
			Name:         "Project Complexity",
			Description:  "Determines how intricate the project is.",
			Kind:         KindSelect,
			DefaultValue: String("medium"),
			Bias:         0.2,
			Options: []Option{
				{Value: "low", Label: "Low"},
				{Value: "medium", Label: "Medium"},
				{Value: "high", Label: "High"},
				{Value: "advanced", Label: "Advanced"},
			},
			Affects: []Affect{
				{Target: "teamSize", Weight: 0.6},
				{Target: DurationID, Weight: 0.3},
				{Target: "qualityLevel", Weight: 0.4},
			},
		},
		{
			ID:           UrgencyID,
			Name:         "Project Urgency",
			Description:  "Urgent projects require more resources and increase costs.",
			Kind:         KindOptions,
			DefaultValue: String("normal"),
			Bias:         0.4,
			Options: []Option{
				{Value: "low", Label: "Low Priority"},
				{Value: "normal", Label: "Normal"},
				{Value: "high", Label: "High Priority"},
				{Value: "urgent", Label: "Urgent"},
			},
			Affects: []Affect{
				{Target: "teamSize", Weight: 0.7},
				{Target: DurationID, Weight: -0.6},
			},
		},
		{
			ID:           "teamSize",
			Name:         "Team Size",
			Description:  "Number of developers working on the project.",
			Kind:         KindNumber,
			Min:          ptr(1),
			Max:          ptr(10),
			Step:         ptr(1),
			DefaultValue: Number(1),
			Bias:         0.2,
			Unit:         "developers",
		},
		{
			ID:           "needsDeployment",
			Name:         "Includes Deployment",
			Description:  "Adds deployment and server setup costs.",
			Kind:         KindToggle,
			DefaultValue: Bool(false),
			Bias:         0.15,
			Affects:      []Affect{{Target: DurationID, Weight: 0.2}},
		},
		{
			ID:           "needsTesting",
			Name:         "Includes Testing",
			Description:  "Adds quality assurance and bug testing costs.",
			Kind:         KindToggle,
			DefaultValue: Bool(false),
			Bias:         0.1,
			Affects: []Affect{
				{Target: DurationID, Weight: 0.15},
				{Target: "qualityLevel", Weight: 0.25},
			},
		},
		{
			ID:           "qualityLevel",
			Name:         "Quality Requirements",
			Description:  "Determines code robustness, QA standards, and performance expectations.",
			Kind:         KindSelect,
			DefaultValue: String("standard"),
			Bias:         0.4,
			Options: []Option{
				{Value: "mvp", Label: "MVP"},
				{Value: "standard", Label: "Standard"},
				{Value: "enterprise", Label: "Enterprise Grade"},
			},
			Affects: []Affect{
				{Target: DurationID, Weight: 0.5},
				{Target: "teamSize", Weight: 0.4},
				{Target: ComplexityID, Weight: 0.6},
			},
		},
	}
}
