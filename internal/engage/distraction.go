package engage

// DistractionEligible reports whether a message id hashes into the
// distraction bucket. The hash is the classic 31x rolling hash over the id
// bytes, deliberately truncated to 32 bits so the same id always lands in
// the same bucket. Roughly one message in eight qualifies.
func DistractionEligible(id string) bool {
	var h int32
	for i := 0; i < len(id); i++ {
		h = h*31 + int32(id[i])
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v%8 == 0
}
