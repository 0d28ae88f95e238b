package internalcheck

import "golang.org/x/tools/go/packages"

const modulePath = "github.com/hyperledger-identus/anoncreds-shim-go"

// pureGoPackages can be type-checked without a C toolchain.
var pureGoPackages = []string{
	modulePath + "/pkg/anoncreds",
	modulePath + "/pkg/anoncreds/ffi",
	modulePath + "/pkg/anoncreds/cabi",
	modulePath + "/pkg/anoncreds/logging",
	modulePath + "/pkg/anoncreds/mocklib",
	modulePath + "/cmd/anoncreds-go",
}

func loadTyped() ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedFiles | packages.NeedName,
	}
	return packages.Load(cfg, pureGoPackages...)
}
