package platform_test

import (
	"context"
	"fmt"
	"log"

	"github.com/icp-sdk/ic-wasm-launcher/internal/platform"
)

func ExampleDetector_Detect() {
	detector := platform.NewDetector()
	info, err := detector.Detect(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Platform: %s\n", info.Key())
	fmt.Printf("Host: %s\n", info.Describe())
}

func ExampleNewKey() {
	key := platform.NewKey(platform.OSWindows, platform.ArchX64)
	fmt.Println(key, key.OS(), key.Arch())
	// Output: win32-x64 win32 x64
}
