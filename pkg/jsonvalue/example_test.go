package jsonvalue_test

import (
	"fmt"

	"github.com/matzehuels/jsonscope/pkg/jsonvalue"
)

func ExampleParseString() {
	v, err := jsonvalue.ParseString(`{"zeta": 1, "alpha": [true, null]}`)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	obj := v.(*jsonvalue.Object)
	fmt.Println("Kind:", v.Kind())
	fmt.Println("Keys:", obj.Keys())
	fmt.Println("Compact:", jsonvalue.Compact(v))
	// Output:
	// Kind: object
	// Keys: [zeta alpha]
	// Compact: {"zeta":1,"alpha":[true,null]}
}

func ExampleIndent() {
	out, _ := jsonvalue.Indent(jsonvalue.MustParse(`{"name":"jsonscope","tags":["json"]}`), "  ")
	fmt.Print(string(out))
	// Output:
	// {
	//   "name": "jsonscope",
	//   "tags": [
	//     "json"
	//   ]
	// }
}
