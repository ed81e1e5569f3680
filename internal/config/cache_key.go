package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// CandidateSessionKey returns the cache key for a candidate's login session.
func (r *CacheKeyStruct) CandidateSessionKey(candidateID int) string {
	return fmt.Sprintf("login:%d", candidateID)
}

// PaperKey returns the cache key for the assembled exam paper at a level.
func (r *CacheKeyStruct) PaperKey(level string) string {
	return fmt.Sprintf("paper:%s", level)
}

var CacheKey = NewCacheKeyStruct()
