package domain

type NotificationType string

const (
	NotificationBadgeAwarded       NotificationType = "BADGE_AWARDED"
	NotificationSanctionApplied    NotificationType = "SANCTION_APPLIED"
	NotificationComplianceDecision NotificationType = "COMPLIANCE_DECISION"
	NotificationComplianceRequest  NotificationType = "COMPLIANCE_REQUEST"
)

type Notification struct {
	ID        int32            `json:"id"`
	UserID    int32            `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read"`
	CreatedOn string           `json:"created_on"`
}
