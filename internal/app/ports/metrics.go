package ports

type EventMetrics interface {
	RecordCreated()
	RecordRolled(success bool)
	RecordClaimWon()
	RecordClaimLost()
	RecordExpired(n int)
}
