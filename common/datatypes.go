package common

import (
  "encoding/json"

  "gorm.io/datatypes"
)

func JSONBlob(in interface{}) datatypes.JSON {
  if in == nil {
    return nil
  }
  buf, _ := json.Marshal(in)
  return datatypes.JSON(buf)
}
