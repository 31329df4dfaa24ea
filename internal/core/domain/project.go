package domain

// Project is a real-estate development owned by a tenant.
type Project struct {
	ProjectID  string `json:"projectId"`
	TenantID   string `json:"tenantId"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	TotalUnits int    `json:"totalUnits"` // declared, not derived from Unit rows
	AuditFields
}
