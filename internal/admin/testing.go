package admin

// RemoveAccount is a test helper that deletes an administrator out of band
// when using the in-memory repository, simulating a stale session target.
func RemoveAccount(r Repository, id string) {
	if mem, ok := r.(*memoryRepository); ok {
		mem.remove(id)
	}
}
