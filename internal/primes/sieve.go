package primes

// Sieve generates all primes <= limit using the Sieve of Eratosthenes.
// Runs in O(n log log n) time over a boolean table.
func Sieve(limit int) []int64 {
	if limit < 2 {
		return nil
	}

	composite := make([]bool, limit+1)
	for i := 2; i*i <= limit; i++ {
		if composite[i] {
			continue
		}
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}

	out := make([]int64, 0, limit/2)
	for i := 2; i <= limit; i++ {
		if !composite[i] {
			out = append(out, int64(i))
		}
	}
	return out
}

// InProgression extracts the primes congruent to a modulo q
func InProgression(primes []int64, a, q int) []int64 {
	if q <= 0 {
		return nil
	}
	var out []int64
	for _, p := range primes {
		if p%int64(q) == int64(a) {
			out = append(out, p)
		}
	}
	return out
}

// Gaps computes the differences between consecutive entries
func Gaps(primes []int64) []int64 {
	if len(primes) < 2 {
		return nil
	}
	out := make([]int64, len(primes)-1)
	for i := 0; i < len(primes)-1; i++ {
		out[i] = primes[i+1] - primes[i]
	}
	return out
}

// IsStrictlyIncreasing reports whether the sequence is strictly increasing
// with no duplicates.
func IsStrictlyIncreasing(seq []int64) bool {
	for i := 1; i < len(seq); i++ {
		if seq[i] <= seq[i-1] {
			return false
		}
	}
	return true
}

// GCD returns the greatest common divisor of a and b
func GCD(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}
