package app

// announceOnlineCount publishes the aggregate count on every registry
// transition. The admin count is intentionally not part of this: it is
// computed request-driven via AdminOnlineCount.
func (r *Relay) announceOnlineCount() {
	r.BroadcastAll(OnlineCountEvent{Type: EvtOnlineCount, OnlineCount: r.registry.OnlineCount()})
}

// OnlineCount is the current number of distinct online users.
func (r *Relay) OnlineCount() int { return r.registry.OnlineCount() }

// AdminOnlineCount cross-references online users with the admin flag.
func (r *Relay) AdminOnlineCount() int { return r.registry.OnlineAdminCount() }
