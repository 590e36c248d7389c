package objc

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("objcbridge.objc")
