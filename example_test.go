package cat_test

import (
	"bytes"
	"fmt"

	"github.com/Station-Manager/cat"
)

func Example() {
	reg := cat.DefaultRegistry()

	router := cat.NewRouter(reg)
	_ = router.HandleFunc(cat.CmdID, func(id cat.CommandID, params []byte, w cat.ReplyWriter) {
		_ = w.ReplyString("ID0670")
	})
	_ = router.HandleFunc(cat.CmdFA, func(id cat.CommandID, params []byte, w cat.ReplyWriter) {
		fmt.Printf("tune to %s Hz\n", params)
	})

	var out bytes.Buffer
	ch, err := cat.NewChannel(reg, router, cat.WithReplySink(&out), cat.WithErrorPolicy(cat.PolicyReply))
	if err != nil {
		fmt.Println("channel error:", err)
		return
	}

	// Commands may arrive split at any byte.
	_, _ = ch.Write([]byte("ID;FA0142"))
	_, _ = ch.Write([]byte("50000;ZZ;"))

	fmt.Printf("replies: %s\n", out.String())
	// Output:
	// tune to 014250000 Hz
	// replies: ID0670;?;
}

func ExampleChannel_Feed() {
	ch, _ := cat.NewChannel(cat.DefaultRegistry(), nil, cat.WithMaxFrameLength(8))

	for o := range ch.Feed([]byte("FA0142;012345678MD02;ZZ;")) {
		fmt.Printf("%s %q %q\n", o.Kind, o.Command.Mnemonic, o.Params)
	}
	// Output:
	// malformed "FA" "0142"
	// overflow "" ""
	// dispatched "MD" "02"
	// unknown "" "ZZ"
}

func ExampleRegistry_LookupString() {
	d, ok := cat.DefaultRegistry().LookupString("FA")
	fmt.Println(ok, d.Mnemonic, d.Contract, d.Description)

	_, ok = cat.DefaultRegistry().LookupString("fa")
	fmt.Println(ok)
	// Output:
	// true FA exact(9) Frequency main band
	// false
}
