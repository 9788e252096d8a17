package catalog

import "github.com/contractdesk/go-contract-backend/internal/catalog/domain"

// Seed returns the built-in catalog: the contact → service → billing → terms
// contract pipeline with its variants, components, fields and rules. It is
// the default until a deployment ships its own catalog document.
func Seed() *domain.Document {
	return &domain.Document{
		Categories: []domain.BlockCategory{
			{
				ID:          "cat-parties",
				Name:        "Parties",
				Description: "Who the contract is between",
				Icon:        "users",
				SortOrder:   1,
				Blocks: []domain.BlockType{
					{
						ID:          "blk-contact",
						CategoryID:  "cat-parties",
						Name:        "Contact",
						Description: "Customer or counterparty details",
						BlockTag:    domain.TagContact,
						IconNames:   []string{"user", "address-book"},
						HexColor:    "#2563EB",
						BorderStyle: domain.BorderSolid,
						CanResize:   true,
						NodeConfig: domain.NodeConfig{
							MinInstances: 1,
							MaxInstances: 0, // unlimited
							Outputs:      []string{"out"},
						},
						Variants: []domain.BlockVariant{
							{
								ID:       "var-contact-single",
								BlockID:  "blk-contact",
								Name:     "Single Contact",
								NodeType: "contactSingle",
								DefaultConfig: map[string]any{
									"displayName": "",
									"email":       "",
									"phone":       "",
									"address": map[string]any{
										"street": "",
										"city":   "",
									},
								},
								Component: &domain.BlockComponent{
									ID:            "cmp-contact-single",
									ComponentName: "ContactCard",
									DisplayMode:   domain.DisplayBoth,
									Config: domain.ComponentConfig{
										Design: &domain.DesignLayout{
											Layout:     "card",
											ShowAvatar: true,
											Fields: []domain.FieldSpec{
												{Name: "displayName", Width: "full"},
												{Name: "email", Width: "half"},
												{Name: "phone", Width: "half"},
											},
											Style: "primary",
										},
										Contract: &domain.ContractLayout{
											Layout:      "party-block",
											Template:    "{{displayName}} <{{email}}>",
											HideIfEmpty: true,
										},
									},
								},
								Fields: []domain.BlockField{
									{
										ID:        "fld-contact-name",
										FieldName: "displayName",
										FieldType: "text",
										Config:    domain.FieldConfig{Label: "Name", Placeholder: "Full name", MaxLength: 120},
										Required:  true,
										SortOrder: 1,
									},
									{
										ID:        "fld-contact-email",
										FieldName: "email",
										FieldType: "email",
										Config:    domain.FieldConfig{Label: "Email", Placeholder: "name@company.com", Format: "email"},
										Required:  true,
										SortOrder: 2,
									},
									{
										ID:        "fld-contact-phone",
										FieldName: "phone",
										FieldType: "tel",
										Config:    domain.FieldConfig{Label: "Phone"},
										SortOrder: 3,
									},
								},
								Rules: []domain.BlockRule{
									{
										ID:             "rule-contact-required",
										Type:           domain.RuleValidation,
										Name:           "contact-required-fields",
										ExecutionOrder: 1,
										Config: domain.ValidationRuleConfig{
											Conditions: []domain.Condition{
												{Field: "displayName", Operator: "required", Message: "name is required"},
												{Field: "email", Operator: "required", Message: "email is required"},
												{Field: "displayName", Operator: "maxLength", Value: float64(120), Message: "name is too long"},
											},
										},
									},
								},
							},
							{
								ID:       "var-contact-multi",
								BlockID:  "blk-contact",
								Name:     "Multiple Contacts",
								NodeType: "contactMulti",
								DefaultConfig: map[string]any{
									"contacts":   []any{},
									"maxEntries": float64(5),
								},
								Fields: []domain.BlockField{
									{
										ID:        "fld-contact-multi-entries",
										FieldName: "contacts",
										FieldType: "list",
										Config:    domain.FieldConfig{Label: "Contacts"},
										Required:  true,
										SortOrder: 1,
									},
								},
							},
						},
					},
				},
			},
			{
				ID:          "cat-services",
				Name:        "Services",
				Description: "What is being delivered",
				Icon:        "briefcase",
				SortOrder:   2,
				Blocks: []domain.BlockType{
					{
						ID:          "blk-service",
						CategoryID:  "cat-services",
						Name:        "Service",
						Description: "A service line item",
						BlockTag:    domain.TagService,
						IconNames:   []string{"briefcase"},
						HexColor:    "#059669",
						BorderStyle: domain.BorderSolid,
						CanResize:   true,
						NodeConfig: domain.NodeConfig{
							MinInstances: 1,
							MaxInstances: 0,
							Inputs:       []string{"in"},
							Outputs:      []string{"out"},
						},
						Variants: []domain.BlockVariant{
							{
								ID:       "var-service-standard",
								BlockID:  "blk-service",
								Name:     "Service Item",
								NodeType: "serviceItem",
								DefaultConfig: map[string]any{
									"serviceName": "",
									"description": "",
									"unit":        "hour",
								},
								Component: &domain.BlockComponent{
									ID:            "cmp-service",
									ComponentName: "ServiceCard",
									DisplayMode:   domain.DisplayDesign,
									Config: domain.ComponentConfig{
										Design: &domain.DesignLayout{
											Layout: "list",
											Fields: []domain.FieldSpec{
												{Name: "serviceName", Width: "full"},
												{Name: "unit", Width: "half"},
											},
										},
									},
								},
								Fields: []domain.BlockField{
									{
										ID:        "fld-service-name",
										FieldName: "serviceName",
										FieldType: "text",
										Config:    domain.FieldConfig{Label: "Service", MaxLength: 200},
										Required:  true,
										SortOrder: 1,
									},
									{
										ID:        "fld-service-unit",
										FieldName: "unit",
										FieldType: "select",
										Config:    domain.FieldConfig{Label: "Billing unit"},
										SortOrder: 2,
									},
								},
								Rules: []domain.BlockRule{
									{
										ID:             "rule-service-required",
										Type:           domain.RuleValidation,
										Name:           "service-required-fields",
										ExecutionOrder: 1,
										Config: domain.ValidationRuleConfig{
											Conditions: []domain.Condition{
												{Field: "serviceName", Operator: "required", Message: "service name is required"},
											},
										},
									},
								},
							},
						},
					},
				},
			},
			{
				ID:          "cat-commercials",
				Name:        "Commercials",
				Description: "Pricing and payment",
				Icon:        "credit-card",
				SortOrder:   3,
				Blocks: []domain.BlockType{
					{
						ID:          "blk-billing",
						CategoryID:  "cat-commercials",
						Name:        "Billing",
						Description: "Pricing, schedule and payment method",
						BlockTag:    domain.TagBilling,
						IconNames:   []string{"credit-card", "calendar"},
						HexColor:    "#D97706",
						BorderStyle: domain.BorderDashed,
						NodeConfig: domain.NodeConfig{
							MinInstances: 1,
							MaxInstances: 1,
							Inputs:       []string{"in"},
							Outputs:      []string{"out"},
						},
						Variants: []domain.BlockVariant{
							{
								ID:       "var-billing-recurring",
								BlockID:  "blk-billing",
								Name:     "Recurring Billing",
								NodeType: "billingRecurring",
								DefaultConfig: map[string]any{
									"baseAmount":       float64(0),
									"periodsPerYear":   float64(12),
									"annualAmount":     float64(0),
									"paymentTermsDays": float64(30),
								},
								Component: &domain.BlockComponent{
									ID:            "cmp-billing",
									ComponentName: "BillingSummary",
									DisplayMode:   domain.DisplayBoth,
									Config: domain.ComponentConfig{
										Design: &domain.DesignLayout{
											Layout: "summary",
											Fields: []domain.FieldSpec{
												{Name: "baseAmount", Width: "half"},
												{Name: "periodsPerYear", Width: "half"},
												{Name: "annualAmount", Width: "full"},
											},
										},
										Contract: &domain.ContractLayout{
											Layout:       "billing-table",
											Template:     "{{baseAmount}} per period, {{annualAmount}} per year",
											ShowSchedule: true,
										},
									},
								},
								Fields: []domain.BlockField{
									{
										ID:        "fld-billing-base",
										FieldName: "baseAmount",
										FieldType: "number",
										Config:    domain.FieldConfig{Label: "Amount per period", Format: "currency"},
										Required:  true,
										SortOrder: 1,
									},
									{
										ID:        "fld-billing-periods",
										FieldName: "periodsPerYear",
										FieldType: "number",
										Config:    domain.FieldConfig{Label: "Periods per year"},
										Required:  true,
										SortOrder: 2,
									},
									{
										ID:        "fld-billing-annual",
										FieldName: "annualAmount",
										FieldType: "number",
										Config:    domain.FieldConfig{Label: "Annual amount", Format: "currency"},
										SortOrder: 3,
									},
								},
								Rules: []domain.BlockRule{
									{
										ID:             "rule-billing-amounts",
										Type:           domain.RuleValidation,
										Name:           "billing-positive-amounts",
										ExecutionOrder: 1,
										Config: domain.ValidationRuleConfig{
											Conditions: []domain.Condition{
												{Field: "baseAmount", Operator: "min", Value: float64(0), Message: "amount must not be negative"},
												{Field: "periodsPerYear", Operator: "min", Value: float64(1), Message: "at least one period per year"},
											},
										},
									},
									{
										ID:             "rule-billing-annual",
										Type:           domain.RuleCalculation,
										Name:           "billing-annual-amount",
										ExecutionOrder: 2,
										Config: domain.CalculationRuleConfig{
											TargetField:   "annualAmount",
											Operation:     "multiply",
											OperandFields: []string{"baseAmount", "periodsPerYear"},
											TriggerFields: []string{"baseAmount", "periodsPerYear"},
										},
									},
								},
							},
						},
					},
				},
			},
			{
				ID:          "cat-legal",
				Name:        "Legal",
				Description: "Terms and conditions",
				Icon:        "scale",
				SortOrder:   4,
				Blocks: []domain.BlockType{
					{
						ID:          "blk-terms",
						CategoryID:  "cat-legal",
						Name:        "Terms",
						Description: "Contract terms and clauses",
						BlockTag:    domain.TagTerms,
						IconNames:   []string{"scale"},
						HexColor:    "#7C3AED",
						BorderStyle: domain.BorderDotted,
						NodeConfig: domain.NodeConfig{
							MinInstances: 1,
							MaxInstances: 1,
							Inputs:       []string{"in"},
						},
						Variants: []domain.BlockVariant{
							{
								ID:       "var-terms-standard",
								BlockID:  "blk-terms",
								Name:     "Standard Terms",
								NodeType: "termsStandard",
								DefaultConfig: map[string]any{
									"noticePeriodDays": float64(30),
									"autoRenew":        true,
									"renewalNote":      "",
									"jurisdiction":     "",
								},
								Fields: []domain.BlockField{
									{
										ID:        "fld-terms-notice",
										FieldName: "noticePeriodDays",
										FieldType: "number",
										Config:    domain.FieldConfig{Label: "Notice period (days)"},
										Required:  true,
										SortOrder: 1,
									},
									{
										ID:        "fld-terms-renew",
										FieldName: "autoRenew",
										FieldType: "checkbox",
										Config:    domain.FieldConfig{Label: "Auto-renew"},
										SortOrder: 2,
									},
									{
										ID:        "fld-terms-renewal-note",
										FieldName: "renewalNote",
										FieldType: "text",
										Config:    domain.FieldConfig{Label: "Renewal note"},
										SortOrder: 3,
									},
									{
										ID:        "fld-terms-jurisdiction",
										FieldName: "jurisdiction",
										FieldType: "text",
										Config:    domain.FieldConfig{Label: "Jurisdiction"},
										SortOrder: 4,
									},
								},
								Rules: []domain.BlockRule{
									{
										ID:             "rule-terms-notice",
										Type:           domain.RuleValidation,
										Name:           "terms-notice-period",
										ExecutionOrder: 1,
										Config: domain.ValidationRuleConfig{
											Conditions: []domain.Condition{
												{Field: "noticePeriodDays", Operator: "min", Value: float64(0), Message: "notice period must not be negative"},
											},
										},
									},
									{
										ID:             "rule-terms-renewal-note",
										Type:           domain.RuleVisibility,
										Name:           "terms-renewal-note-visibility",
										ExecutionOrder: 2,
										Config: domain.VisibilityRuleConfig{
											TargetFields: []string{"renewalNote"},
											When:         domain.Condition{Field: "autoRenew", Operator: "eq", Value: true},
										},
									},
								},
							},
						},
					},
				},
			},
		},
		Connections: []domain.BlockConnection{
			{
				ID:            "conn-contact-service",
				SourceBlockID: "blk-contact",
				TargetBlockID: "blk-service",
				Type:          domain.ConnectionDataFlow,
				Rules: domain.ConnectionRules{
					AllowMultiple: true,
					DataMapping:   map[string]string{"displayName": "recipientName"},
				},
			},
			{
				ID:            "conn-contact-billing",
				SourceBlockID: "blk-contact",
				TargetBlockID: "blk-billing",
				Type:          domain.ConnectionDataFlow,
				Rules:         domain.ConnectionRules{AllowMultiple: false},
			},
			{
				ID:            "conn-contact-terms",
				SourceBlockID: "blk-contact",
				TargetBlockID: "blk-terms",
				Type:          domain.ConnectionSequence,
				Rules:         domain.ConnectionRules{AllowMultiple: false},
			},
			{
				ID:            "conn-service-billing",
				SourceBlockID: "blk-service",
				TargetBlockID: "blk-billing",
				Type:          domain.ConnectionDataFlow,
				Rules: domain.ConnectionRules{
					AllowMultiple: true,
					DataMapping:   map[string]string{"serviceName": "lineItem"},
				},
			},
			{
				ID:            "conn-service-terms",
				SourceBlockID: "blk-service",
				TargetBlockID: "blk-terms",
				Type:          domain.ConnectionSequence,
				Rules:         domain.ConnectionRules{AllowMultiple: false},
			},
			{
				ID:            "conn-billing-terms",
				SourceBlockID: "blk-billing",
				TargetBlockID: "blk-terms",
				Type:          domain.ConnectionSequence,
				Rules: domain.ConnectionRules{
					AllowMultiple: false,
					Validation:    &domain.ConnectionValidation{Message: "billing must feed into terms"},
				},
			},
		},
	}
}
