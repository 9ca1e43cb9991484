package hash

// IsPrime - Returns true if n is a prime number.
// Uses trial division skipping multiples of 2 and 3, so only divisors of form 6m±1 up to sqrt(n) are tried.
func IsPrime(n int64) bool {
	if n == 2 || n == 3 {
		return true
	}

	if n <= 1 || n%2 == 0 || n%3 == 0 {
		return false
	}

	for i := int64(5); i*i <= n; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}

	return true
}

// NextPrime - Returns the smallest prime number greater than or equal to n
func NextPrime(n int64) int64 {
	if n < 2 {
		return 2
	}

	for !IsPrime(n) {
		n++
	}

	return n
}
