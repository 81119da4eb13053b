package primes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSieveSmallLimit(t *testing.T) {
	expected := []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}
	assert.Equal(t, expected, Sieve(30))
}

func TestSieveBelowTwo(t *testing.T) {
	assert.Empty(t, Sieve(1))
	assert.Empty(t, Sieve(0))
	assert.Empty(t, Sieve(-5))
}

func TestSieveBoundaryIncluded(t *testing.T) {
	primes := Sieve(29)
	assert.Equal(t, int64(29), primes[len(primes)-1])
}

func TestSieveCount(t *testing.T) {
	// pi(10^4) = 1229
	assert.Len(t, Sieve(10_000), 1229)
}

func TestInProgressionOnlyMatchingResidues(t *testing.T) {
	primes := Sieve(200)
	for _, q := range []int{3, 5, 7, 10} {
		for a := 0; a < q; a++ {
			for _, p := range InProgression(primes, a, q) {
				assert.Equal(t, int64(a), p%int64(q), "p=%d a=%d q=%d", p, a, q)
			}
		}
	}
}

func TestInProgressionPartitions(t *testing.T) {
	primes := Sieve(500)
	total := 0
	for a := 0; a < 6; a++ {
		total += len(InProgression(primes, a, 6))
	}
	assert.Equal(t, len(primes), total)
}

func TestGaps(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 2, 4}, Gaps([]int64{2, 3, 5, 7, 11}))
	assert.Nil(t, Gaps([]int64{2}))
	assert.Nil(t, Gaps(nil))
}

func TestIsStrictlyIncreasing(t *testing.T) {
	assert.True(t, IsStrictlyIncreasing([]int64{2, 3, 7, 23}))
	assert.True(t, IsStrictlyIncreasing(nil))
	assert.False(t, IsStrictlyIncreasing([]int64{2, 3, 3, 7}))
	assert.False(t, IsStrictlyIncreasing([]int64{5, 3}))
}

func TestGCD(t *testing.T) {
	assert.Equal(t, 6, GCD(12, 18))
	assert.Equal(t, 1, GCD(7, 30))
	assert.Equal(t, 5, GCD(0, 5))
}
