// Package dedupe provides duplicate-event suppression using a time-based
// seen-cache, so a network retry of the same channel message cannot
// double-advance a conversation.
package dedupe
