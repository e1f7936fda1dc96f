package config

import "fmt"

type CacheKeyStruct struct{}

// SessionKey returns the key holding the persisted token and user of a browser session.
func (CacheKeyStruct) SessionKey(sid string) string {
	return fmt.Sprintf("console:session:%s", sid)
}

// NotificationChannel is the pub/sub channel carrying live notification events.
func (CacheKeyStruct) NotificationChannel() string {
	return "console:notifications"
}

var CacheKey = CacheKeyStruct{}
