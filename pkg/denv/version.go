package denv

// DiscHash is the FNV-1a-32 hash of s, exported for the CLI's `version`
// subcommand, which hashes the build timestamp into a short "disc"
// component of the version string. It reuses the same hash as the
// table's name lookup so the binary carries exactly one FNV-1a
// implementation.
func DiscHash(s string) uint32 {
	return hashName(s)
}
