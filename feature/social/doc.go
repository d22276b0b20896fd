// Package social serves social media posts per disaster. The current
// provider is a mock generator standing in for a real firehose; results are
// cached under "social:<disasterId>" and fresh fetches broadcast
// social_media_updated to connected clients.
package social
