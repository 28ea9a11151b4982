package config

const (
	// DefaultRepoURL is the canonical upstream repository
	DefaultRepoURL = "https://github.com/bitcoin/bitcoin"
	// DefaultBranch is the default branch to provision
	DefaultBranch = "master"
	// DefaultBuildType is the default CMake build type
	DefaultBuildType = "RelWithDebInfo"
	// DefaultTestSuite runs both harnesses
	DefaultTestSuite = "both"
	// DefaultPythonScope is the default functional test scope
	DefaultPythonScope = "standard"
	// DefaultPythonJobs is the default functional test parallelism
	DefaultPythonJobs = 4
	// DefaultWorkspace is the directory the source tree is provisioned into
	DefaultWorkspace = "bitcoin"
	// DefaultComposeFile is the orchestration file consumed as-is
	DefaultComposeFile = "docker-compose.yml"
	// DefaultService is the compose service the tests run in
	DefaultService = "bitcoin-tests"
	// DefaultOutputJSONFile is the output JSON file name for the last run
	DefaultOutputJSONFile = "run-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
)

// ValidBuildTypes are the CMake build types the image recipe accepts
var ValidBuildTypes = []string{"Debug", "Release", "RelWithDebInfo", "MinSizeRel"}

// ValidTestSuites are the recognized test suite selections
var ValidTestSuites = []string{"cpp", "python", "both"}
