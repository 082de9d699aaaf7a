package metrics

// IncrementCompanyCreated increments company creation counter
func (m *Metrics) IncrementCompanyCreated() {
	m.safeExecute("IncrementCompanyCreated", func() {
		m.CompanyCreatedTotal.Inc()
	})
}

// IncrementGuildCreated increments guild creation counter
func (m *Metrics) IncrementGuildCreated() {
	m.safeExecute("IncrementGuildCreated", func() {
		m.GuildCreatedTotal.Inc()
	})
}

// IncrementPlayerCreated increments player creation counter
func (m *Metrics) IncrementPlayerCreated() {
	m.safeExecute("IncrementPlayerCreated", func() {
		m.PlayerCreatedTotal.Inc()
	})
}

// SetCompaniesTotal sets total companies gauge
func (m *Metrics) SetCompaniesTotal(count int64) {
	m.safeExecute("SetCompaniesTotal", func() {
		m.CompaniesTotal.Set(float64(count))
	})
}

// SetGuildsTotal sets total guilds gauge
func (m *Metrics) SetGuildsTotal(count int64) {
	m.safeExecute("SetGuildsTotal", func() {
		m.GuildsTotal.Set(float64(count))
	})
}

// SetPlayersTotal sets total players gauge
func (m *Metrics) SetPlayersTotal(count int64) {
	m.safeExecute("SetPlayersTotal", func() {
		m.PlayersTotal.Set(float64(count))
	})
}

// IncrementCacheHit increments the photo URL cache hit counter
func (m *Metrics) IncrementCacheHit() {
	m.safeExecute("IncrementCacheHit", func() {
		m.CacheHitsTotal.Inc()
	})
}

// IncrementCacheMiss increments the photo URL cache miss counter
func (m *Metrics) IncrementCacheMiss() {
	m.safeExecute("IncrementCacheMiss", func() {
		m.CacheMissesTotal.Inc()
	})
}

// ObserveStorageOperation records one object storage call and its outcome
func (m *Metrics) ObserveStorageOperation(operation string, err error) {
	m.safeExecute("ObserveStorageOperation", func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		m.StorageOperationsTotal.WithLabelValues(operation, status).Inc()
	})
}
