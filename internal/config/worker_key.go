package config

type WorkerKeyStruct struct {
	AuditQueue string
}

var WorkerKey = &WorkerKeyStruct{
	AuditQueue: "console_audit_queue",
}
