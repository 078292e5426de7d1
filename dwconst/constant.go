package dwconst

import "github.com/bkin/dwgrep/value"

// Tag builds a DW_TAG_* constant value.
func Tag(code int64) *value.Constant { return value.NewConstant(code, TagDomain) }

// Attr builds a DW_AT_* constant value.
func Attr(code int64) *value.Constant { return value.NewConstant(code, AttrDomain) }

// Form builds a DW_FORM_* constant value.
func Form(code int64) *value.Constant { return value.NewConstant(code, FormDomain) }

// Class builds a DW_FORM_CLASS_* constant value (see ClassDomain).
func Class(code int64) *value.Constant { return value.NewConstant(code, ClassDomain) }

// Op builds a DW_OP_* constant value.
func Op(code int64) *value.Constant { return value.NewConstant(code, OpDomain) }

// Lang builds a DW_LANG_* constant value.
func Lang(code int64) *value.Constant { return value.NewConstant(code, LangDomain) }

// Ate builds a DW_ATE_* constant value.
func Ate(code int64) *value.Constant { return value.NewConstant(code, AteDomain) }

// Access builds a DW_ACCESS_* constant value.
func Access(code int64) *value.Constant { return value.NewConstant(code, AccessDomain) }

// AddressClass builds a DW_ADDR_* constant value.
func AddressClass(code int64) *value.Constant { return value.NewConstant(code, AddressClassDomain) }
